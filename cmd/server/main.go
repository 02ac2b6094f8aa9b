package main

import (
	"context"
	"crypto/tls"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/example/studio-moguls/internal/config"
	"github.com/example/studio-moguls/internal/game"
	"github.com/example/studio-moguls/internal/random"
	srv "github.com/example/studio-moguls/internal/server"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	var (
		httpPort  = flag.String("http-port", "8080", "HTTP port")
		httpsPort = flag.String("https-port", "8443", "HTTPS port")
		certFile  = flag.String("cert", "", "Path to certificate file")
		keyFile   = flag.String("key", "", "Path to private key file")
		tlsOnly   = flag.Bool("tls-only", false, "Only serve HTTPS")
	)
	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	seed, err := random.NewSeed()
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	gs := srv.NewGameServer()
	g := game.New(cfg, gs, rand.New(rand.NewSource(seed)))
	gs.SetGame(g)
	go g.Run(context.Background())

	r := mux.NewRouter()

	// CORS headers for the browser clients
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	}).Methods("GET")

	r.HandleFunc("/ws", gs.HandleWS)

	log.Printf("websocket endpoint: ws://localhost:%s/ws", *httpPort)

	// Determine certificate paths
	var certPath, keyPath string
	if *certFile != "" && *keyFile != "" {
		certPath = *certFile
		keyPath = *keyFile
	} else {
		certPath = "certs/server.crt"
		keyPath = "certs/server.key"
	}

	missingCerts := false
	if _, err := os.Stat(certPath); os.IsNotExist(err) {
		missingCerts = true
	}
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		missingCerts = true
	}

	if missingCerts {
		if *tlsOnly {
			log.Fatalf("TLS-only mode enabled but certificates not found at %s / %s", certPath, keyPath)
		}
		log.Printf("certificates not found, serving HTTP only on port %s", *httpPort)
		log.Fatal(http.ListenAndServe(":"+*httpPort, r))
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	go func() {
		httpsAddr := ":" + *httpsPort
		log.Printf("Studio Moguls backend (HTTPS) listening on %s", httpsAddr)

		server := &http.Server{
			Addr:      httpsAddr,
			Handler:   r,
			TLSConfig: tlsConfig,
		}
		if err := server.ListenAndServeTLS(certPath, keyPath); err != nil {
			log.Fatal("HTTPS server failed:", err)
		}
	}()

	if *tlsOnly {
		select {}
	}

	log.Printf("Studio Moguls backend (HTTP) listening on :%s", *httpPort)
	log.Fatal(http.ListenAndServe(":"+*httpPort, r))
}
