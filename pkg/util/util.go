package util

import "encoding/json"

// Must is a helper to simplify error handling around marshalling
func Must(data []byte, err error) json.RawMessage {
	if err != nil {
		panic(err)
	}
	return data
}
