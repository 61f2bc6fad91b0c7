package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// client is used for every call to the node. Mining can take a while.
var client = http.Client{
	Timeout: 10 * time.Minute,
}

// errorResponse is the document the node returns for a failed call.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// get performs a GET against the node and decodes the response into v.
func get(path string, v any) error {
	resp, err := client.Get(url + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, v)
}

// post performs a POST of body against the node and decodes the
// response into v.
func post(path string, body any, v any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	resp, err := client.Post(url+path, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, v)
}

func decode(resp *http.Response, v any) error {
	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("node responded with status %d", resp.StatusCode)
		}

		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}
		return errors.New(er.Error)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
