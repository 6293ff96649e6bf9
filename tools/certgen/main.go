// Package main writes a development CA and a server certificate signed by
// it into a directory, for running the server with -tls-cert/-tls-key and
// pointing the client's --ca at the CA.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/LocalSites/internal/certgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("certgen", flag.ContinueOnError)
	dir := fs.String("dir", "certs", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs for the server certificate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var names []string
	for _, h := range strings.Split(*hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			names = append(names, h)
		}
	}

	if err := certgen.WriteDevCertificates(*dir, names); err != nil {
		return err
	}

	fmt.Fprintf(out, "Certificates generated into %s\n", *dir)
	fmt.Fprintf(out, "  server: -tls-cert %s -tls-key %s\n",
		filepath.Join(*dir, certgen.ServerCertFile), filepath.Join(*dir, certgen.ServerKeyFile))
	fmt.Fprintf(out, "  client: --ca %s\n", filepath.Join(*dir, certgen.CACertFile))
	return nil
}
