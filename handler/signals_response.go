package handler

import (
	"encoding/json"
	"net/http"
)

type signalsResponse struct {
	signals any
	opts    []JSONOption
}

// Signals answers DataStar requests by patching signals over an event
// stream and everything else with a JSON body. signals must marshal to a
// JSON object.
func Signals(signals any, opts ...JSONOption) Response {
	return signalsResponse{signals: signals, opts: opts}
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return JSON(s.signals, append([]JSONOption{WithoutEnvelope()}, s.opts...)...).Render(w, r)
	}

	data, err := json.Marshal(s.signals)
	if err != nil {
		return err
	}
	return NewSSE(w, r).PatchSignals(data)
}
