package audio

import (
	"bytes"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                   {{.Name}}
	{{if .DefaultInputDevice}}Default input device:   {{.DefaultInputDevice.Name}}{{end}}
	Devices: {{range .Devices}}{{if .MaxInputChannels}}
		Name:                      {{.Name}}
		MaxInputChannels:          {{.MaxInputChannels}}
		DefaultLowInputLatency:    {{.DefaultLowInputLatency}}
		DefaultHighInputLatency:   {{.DefaultHighInputLatency}}
		DefaultSampleRate:         {{.DefaultSampleRate}}
	{{end}}{{end}}
{{end}}`,
))

// DescribeDevices lists the host APIs and their capture devices.
func DescribeDevices() (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", err
	}
	defer portaudio.Terminate()

	hs, err := portaudio.HostApis()
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer([]byte{})
	if err := deviceTmpl.Execute(buf, hs); err != nil {
		return "", err
	}
	return buf.String(), nil
}
