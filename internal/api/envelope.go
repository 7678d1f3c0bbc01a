package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the optional wrapper the backend puts around response bodies.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Body is a response body resolved at the transport boundary: either the
// payload of an envelope or the raw body when no envelope was present.
type Body struct {
	Payload   json.RawMessage
	Enveloped bool
	Success   bool
	Message   string
	Timestamp string
}

// Normalize decides once whether data is an envelope. An object carrying a
// boolean "success" key plus "data" or "message" counts as an envelope;
// anything else is a raw body.
func Normalize(data []byte) (Body, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Body{}, nil
	}
	if trimmed[0] != '{' {
		return Body{Payload: json.RawMessage(trimmed)}, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return Body{}, fmt.Errorf("decode response: %w", err)
	}
	rawSuccess, hasSuccess := top["success"]
	_, hasData := top["data"]
	_, hasMessage := top["message"]
	var success bool
	if !hasSuccess || json.Unmarshal(rawSuccess, &success) != nil || (!hasData && !hasMessage) {
		return Body{Payload: json.RawMessage(trimmed)}, nil
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Body{}, fmt.Errorf("decode envelope: %w", err)
	}
	return Body{
		Payload:   env.Data,
		Enveloped: true,
		Success:   env.Success,
		Message:   env.Message,
		Timestamp: env.Timestamp,
	}, nil
}

// failure reports an envelope with success=false as a RequestError.
func (b Body) failure() error {
	if !b.Enveloped || b.Success {
		return nil
	}
	msg := b.Message
	if msg == "" {
		msg = "request was not successful"
	}
	return &RequestError{Message: msg}
}

// decode normalizes a success body and decodes its payload into T.
// An envelope reporting success=false is turned into a RequestError.
func decode[T any](data []byte) (*T, error) {
	body, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	if err := body.failure(); err != nil {
		return nil, err
	}
	var out T
	if len(body.Payload) == 0 || string(body.Payload) == "null" {
		return &out, nil
	}
	if err := json.Unmarshal(body.Payload, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// decodeList decodes a list payload, tolerating a paged body in its place.
func decodeList[T any](data []byte) ([]T, error) {
	body, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	if err := body.failure(); err != nil {
		return nil, err
	}
	payload := bytes.TrimSpace(body.Payload)
	if len(payload) == 0 || string(payload) == "null" {
		return []T{}, nil
	}
	if payload[0] == '{' {
		var page Page[T]
		if err := json.Unmarshal(payload, &page); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return page.items(), nil
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
