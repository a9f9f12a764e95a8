// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"cpsir/internal/config"
	"cpsir/internal/lsp"
)

const lsName = "cpsir" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	c, err := config.Resolve(os.Getenv(config.EnvConfig))
	if err != nil {
		log.Println("Error loading configuration:", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to the configured file or stderr
	var logFile *string
	if c.LogFile != "" {
		logFile = &c.LogFile
	}
	commonlog.Configure(max(1, c.Verbosity), logFile)

	h := lsp.NewHandler(c)

	handler = protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp's own message tracing off
	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting CPS language server %s...", version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting CPS language server:", err)
		os.Exit(1)
	}
}
