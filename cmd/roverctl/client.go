package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gni-robotics/fieldrover/internal/httpc"
)

// api talks to the rover's JSON endpoints over the shared HTTP client.
type api struct {
	addr string
}

func newAPI() *api {
	return &api{addr: strings.TrimRight(roverAddr, "/")}
}

func (a *api) get(path string, out any) error {
	resp, err := httpc.Client.Get(a.addr + path)
	if err != nil {
		return fmt.Errorf("reaching rover at %s: %w", a.addr, err)
	}
	return decode(resp, out)
}

func (a *api) post(path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := httpc.Client.Post(a.addr+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("reaching rover at %s: %w", a.addr, err)
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("rover replied %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// wsURL rewrites the service address into its websocket equivalent.
func (a *api) wsURL(path string) string {
	u := strings.Replace(a.addr, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + path
}
