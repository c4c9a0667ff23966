package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/session"
)

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// serve exposes the session's GraphQL schema: v1 takes the query from the
// URL, v2 takes a JSON body with query and variables.
func serve(addr string, s *session.Session) error {
	schema, err := s.Schema()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if glog.V(2) {
			glog.Info(query)
		}
		res := session.Query(schema, query, nil)
		json.NewEncoder(w).Encode(res)
	})

	mux.HandleFunc("/api/v2/graphql", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var req request
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res := session.Query(schema, req.Query, req.Variables)
		for _, err := range res.Errors {
			glog.Errorf("graphql: %v", err)
		}
		json.NewEncoder(w).Encode(res)
	})

	go func() {
		glog.Infof("graphql: listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			glog.Errorf("http: %v", err)
		}
	}()
	return nil
}
