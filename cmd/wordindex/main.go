// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordindex completion server and CLI.

wordindex keeps a vocabulary in an in-memory patricia trie and answers prefix
queries with terms ranked by score, then by length, then alphabetically. The
index can be fed from JSON, plain text, binary chunk files and lz4 compressed
variants of those, and grows at runtime through single inserts or bulk loads.

# Usage

Serve msgpack over stdin/stdout for editors and other local processes:

	wordindex serve --vocab words_dictionary.json

Serve the HTTP JSON API with Prometheus metrics:

	wordindex http --vocab words_dictionary.json --addr :8080

Try prefixes interactively, or run a single query:

	wordindex cli --vocab words.txt --limit 5
	wordindex query happ --vocab words_dictionary.json

# Configuration

Runtime configuration lives in a TOML file that is created with defaults on
first run, ~/.config/wordindex/config.toml unless --config says otherwise:

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60
	enable_filter = true

	[index]
	default_limit = 10
	vocabulary = ["words_dictionary.json"]
	cache_size = 4096

	[http]
	addr = ":8080"

	[metrics]
	enabled = true
	path = "/metrics"

A broken file is parsed leniently so that every valid key still applies.

# IPC Protocol

Requests and responses are msgpack maps. A completion request:

	{"id": "req1", "p": "happ", "l": 3}

and its response, with the time taken in microseconds:

	{"id": "req1", "s": [{"w": "happy", "r": 1, "f": 5}, {"w": "happen", "r": 2, "f": 3}], "c": 2, "t": 38}

See package server for the insert, bulk, stats and health actions.

# HTTP API

	GET  /suggest?prefix=happ&limit=5
	POST /terms       {"term": "happiness", "score": 4}
	POST /terms/bulk  {"terms": [{"term": "cat"}, {"term": "car", "score": 2}]}
	POST /reload
	GET  /stats
	GET  /health

/reload rebuilds the index from the configured vocabulary and swaps it in
atomically. The request returns once the new index is live; queries keep being
served from the old index while it builds.
*/
package main

import "github.com/bastiangx/wordindex/internal/commands"

func main() {
	commands.Execute()
}
