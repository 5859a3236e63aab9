// Copyright 2026 Blink Labs Software
//
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

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	oracledatum "github.com/blinklabs-io/oracle-datum"
	"github.com/blinklabs-io/oracle-datum/cbor"
)

type inspectFlags struct {
	flagset  *flag.FlagSet
	datumHex string
	now      int64
}

func newInspectFlags() *inspectFlags {
	f := &inspectFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.datumHex,
		"datum",
		"",
		"hex-encoded oracle datum CBOR (required)",
	)
	f.flagset.Int64Var(
		&f.now,
		"now",
		time.Now().UnixMilli(),
		"current time as unix milliseconds for the validity check",
	)
	return f
}

func main() {
	f := newInspectFlags()
	if err := f.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if f.datumHex == "" {
		fmt.Println("you must specify a datum via -datum")
		os.Exit(1)
	}
	cborData, err := hex.DecodeString(strings.TrimSpace(f.datumHex))
	if err != nil {
		fmt.Printf("ERROR: failed to decode datum hex: %s\n", err)
		os.Exit(1)
	}
	var datum oracledatum.OracleDatum
	if _, err := cbor.Decode(cborData, &datum); err != nil {
		fmt.Printf("ERROR: failed to decode datum: %s\n", err)
		os.Exit(1)
	}
	price, err := datum.Price()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	createdAt, err := datum.CreatedAt()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	expiryAt, err := datum.ExpiryAt()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	valid, err := datum.IsValid(f.now)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	hash, err := datum.Hash()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Print("Oracle datum:\n\n")
	fmt.Printf("Price: %d\n", price)
	fmt.Printf(
		"Created at: %d (%s)\n",
		createdAt,
		time.UnixMilli(createdAt).UTC().Format(time.RFC3339),
	)
	fmt.Printf(
		"Expires at: %d (%s)\n",
		expiryAt,
		time.UnixMilli(expiryAt).UTC().Format(time.RFC3339),
	)
	fmt.Printf("Valid at %d: %t\n", f.now, valid)
	fmt.Printf("Hash: %s (%s)\n", hash.String(), hash.Bech32())
}
