package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"os"
	"runtime"

	"rogue-view/internal/game"
	"rogue-view/internal/logger"
	"rogue-view/internal/maps"
	"rogue-view/internal/server"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"
)

func main() {
	addr := flag.String("addr", defaultAddr, "SSH listen address")
	mapsDir := flag.String("maps", "assets/maps", "directory of JSON map files")
	mapName := flag.String("map", "", "map served to new sessions (default: first loaded)")
	workers := flag.Int("workers", runtime.NumCPU(), "goroutines per visibility recompute")
	flag.Parse()

	logger.Init()
	log := logger.Log

	if err := ensureHostKey(hostKeyPath); err != nil {
		log.WithError(err).Fatal("host key error")
	}

	allMaps, err := maps.LoadMaps(*mapsDir)
	if err != nil {
		log.WithError(err).WithField("dir", *mapsDir).Warn("could not load maps, using built-in default")
		dm := maps.DefaultMap()
		allMaps = map[string]*maps.Map{dm.Name: dm}
	}
	for name, m := range allMaps {
		log.WithFields(map[string]interface{}{
			"map":   name,
			"cells": m.Grid.Width() * m.Grid.Height(),
		}).Info("map loaded")
	}

	defaultMap := *mapName
	if defaultMap == "" {
		defaultMap = pickDefault(allMaps)
	}
	if _, ok := allMaps[defaultMap]; !ok {
		log.WithField("map", defaultMap).Fatal("requested map not loaded")
	}

	world := game.NewWorld(allMaps, defaultMap, *workers)

	listenAddr := *addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}

	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, world)
	log.WithFields(map[string]interface{}{
		"addr": listenAddr,
		"map":  defaultMap,
	}).Info("starting rogue-view, connect with: ssh -p <port> you@localhost")
	if err := sshServer.Start(); err != nil {
		log.WithError(err).Fatal("SSH server error")
	}
}

// pickDefault chooses a stable default map: "Courtyard" when present,
// otherwise the lexically first name.
func pickDefault(allMaps map[string]*maps.Map) string {
	if _, ok := allMaps["Courtyard"]; ok {
		return "Courtyard"
	}
	best := ""
	for name := range allMaps {
		if best == "" || name < best {
			best = name
		}
	}
	return best
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	logger.Log.Info("generating new host key")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
