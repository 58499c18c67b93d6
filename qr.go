package main

import (
	"fmt"
	"log"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// ControllerURL is the link a phone opens to steer session sid
func ControllerURL(r *http.Request, sid string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s?ctrl=1", scheme, r.Host, sid)
}

// QRHandler serves a PNG QR code of the controller link for ?sid=
func QRHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := r.URL.Query().Get("sid")
		if _, err := hub.sessions.GetSession(sid); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		png, err := qrcode.Encode(ControllerURL(r, sid), qrcode.Medium, qrSize)
		if err != nil {
			log.Printf("qr encode error: %v", err)
			http.Error(w, "qr unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(png)
	}
}
