package shell

import (
	"embed"
	"errors"
	"strings"
)

//go:embed helptext
var helptextFS embed.FS

func usage() (*Response, error) {
	dat, err := helptextFS.ReadFile("helptext/usage.txt")
	if err != nil {
		return nil, errors.New("error loading helptext: " + err.Error())
	}
	return msg(strings.TrimRight(string(dat), "\n")), nil
}

func usageTopic(topic string) (*Response, error) {
	topic = strings.ToLower(topic)
	dat, err := helptextFS.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return nil, errors.New("there is no help text for the topic " + topic)
	}
	return msg(strings.TrimRight(string(dat), "\n")), nil
}
