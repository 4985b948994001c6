// Copyright 2026 The Satchel Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command satcheld listens for TCP connections and serves the satchel
// wire protocol over them.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/satchel-db/satchel/perm"
	"github.com/satchel-db/satchel/session"
	"github.com/satchel-db/satchel/store"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if args[0] != "run" {
			fmt.Fprintf(os.Stderr, "invalid sub-command %q\n", args[0])
			os.Exit(1)
		}
		args = args[1:]
	}
	runServer(args)
}

func runServer(args []string) {
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	listenFlag := runCmd.String("listen", "", "address to listen on (default 127.0.0.1:7070)")
	configFlag := runCmd.String("config", "", "path to a YAML bootstrap config")
	permissionsFlag := runCmd.String("permissions", "", "path to the JSON permission document")
	modeFlag := runCmd.String("mode", "", "run mode: default or test")

	if err := runCmd.Parse(args); err != nil {
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		logger.Fatalf("unable to load config %q: %s", *configFlag, err)
	}

	listen := firstNonEmpty(*listenFlag, cfg.Listen, "127.0.0.1:7070")
	permissionsPath := firstNonEmpty(*permissionsFlag, cfg.Permissions, "")
	modeName := strings.ToLower(firstNonEmpty(*modeFlag, cfg.Mode, "default"))

	runMode := perm.ModeDefault
	if modeName == "test" {
		runMode = perm.ModeTest
	}

	permissionSet, err := perm.FromFile(permissionsPath)
	if err != nil {
		logger.Fatalf("unable to load permissions %q: %s", permissionsPath, err)
	}

	listener, err := net.Listen("tcp", listen)
	if err != nil {
		logger.Fatalf("unable to listen on %q: %s", listen, err)
	}
	defer listener.Close()

	logger.Printf("satcheld listening on %s, mode=%s", listen, runMode)

	db := store.New()
	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Printf("accept error: %s", err)
			continue
		}
		go func() {
			profile := permissionSet.Default
			s := session.New(db, profile, runMode, logger)
			session.Serve(conn, s)
		}()
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
