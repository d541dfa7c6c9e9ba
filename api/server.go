package api

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"

	"github.com/matt-g-everett/gifplay/stream"
)

// Api exposes playback state and controls over HTTP.
type Api struct {
	streamer *stream.Streamer
}

// NewApi creates an Api over the given streamer.
func NewApi(s *stream.Streamer) *Api {
	a := new(Api)
	a.streamer = s
	return a
}

// Serve blocks, serving the playback API on addr.
func (a *Api) Serve(addr string) {
	http.HandleFunc("/status", a.handleStatus)
	http.HandleFunc("/frame", a.handleFrame)
	http.HandleFunc("/pause", a.command("pause"))
	http.HandleFunc("/resume", a.command("resume"))
	http.HandleFunc("/reset", a.command("reset"))

	log.Println("Listening...")
	http.ListenAndServe(addr, nil)
}

// handleStatus writes the playback state as of the last tick.
func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a.streamer.Status())
}

// handleFrame writes the most recently published frame as a PNG.
func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	img := a.streamer.LastFrame()
	if img == nil {
		http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("encode frame: %v", err)
	}
}

// command queues a playback command with the streamer.
func (a *Api) command(cmd string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c := cmd
		if c == "reset" && r.URL.Query().Get("full") == "true" {
			c = "reset-full"
		}
		a.streamer.Command(c)
		w.WriteHeader(http.StatusAccepted)
	}
}
