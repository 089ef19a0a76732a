// main.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// JSON HTTP query server exposing the binpack dictionary over a
// single POST endpoint, with optional bearer-token authorization.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	binpack "github.com/mideind/BinPackage"
)

// Bearer authorization token, if any.
var accessKey string

// Corresponding Authorization header (or "" if no auth required).
var authHeader string

// lookupRequest is the JSON body of a POST /lookup request.
type lookupRequest struct {
	Word   string `json:"word"`
	Op     string `json:"op"` // "lookup", "ksnid", "lemmas", "case", "variants", "id"
	Cat    string `json:"cat,omitempty"`
	Case   string `json:"case,omitempty"`
	BinId  int    `json:"bin_id,omitempty"`
	Forms  []string `json:"forms,omitempty"` // requested inflection atoms, for "variants"
}

type lookupResponse struct {
	Word    string        `json:"word"`
	Entries []binpack.BinEntry `json:"entries,omitempty"`
	Ksnid   []binpack.Ksnid    `json:"ksnid,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func makeHandler(dict *binpack.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}
		if authHeader != "" {
			got := r.Header.Get("Authorization")
			if got != authHeader {
				http.Error(w,
					fmt.Sprintf("Authorization header mismatch: got '%s'", got),
					http.StatusUnauthorized,
				)
				return
			}
		}
		var req lookupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := handleLookup(dict, req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleLookup(dict *binpack.Dictionary, req lookupRequest) lookupResponse {
	switch req.Op {
	case "ksnid":
		return lookupResponse{Word: req.Word, Ksnid: dict.LookupKsnid(req.Word)}
	case "lemmas":
		return lookupResponse{Word: req.Word, Entries: dict.Lemmas(req.Word)}
	case "case":
		word := dict.CastToCase(req.Word, req.Case, nil)
		return lookupResponse{Word: word}
	case "variants":
		ksnid, err := dict.Variants(req.Word, req.Cat, req.Forms)
		if err != nil {
			return lookupResponse{Word: req.Word, Error: err.Error()}
		}
		return lookupResponse{Word: req.Word, Ksnid: ksnid}
	case "id":
		return lookupResponse{Word: req.Word, Ksnid: dict.LookupKsnidByID(req.BinId)}
	default:
		res := dict.Lookup(req.Word)
		return lookupResponse{Word: res.Word, Entries: res.Entries}
	}
}

func warmup(w http.ResponseWriter, r *http.Request) {
	log.Println("Warmup request received")
}

func main() {
	log.SetOutput(os.Stderr)
	log.Printf("binpack server starting, Go version %s", runtime.Version())

	env := binpack.LoadEnv()
	dict, closeAll, err := env.Open()
	if err != nil {
		log.Fatalf("binpack: %v", err)
	}
	defer closeAll()

	accessKey = os.Getenv("ACCESS_KEY")
	if accessKey != "" {
		authHeader = "Bearer " + accessKey
	}

	http.HandleFunc("/_ah/warmup", warmup)
	http.HandleFunc("/lookup", makeHandler(dict))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
