// Copyright (C) 2024 Colplane, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package ctablecfg loads the engine-wide tunables that have no single
// authoritative source in the engine itself: the default reader chunk
// size, a default WorkloadHint, and a default thread-pool width. None
// of this is required for correctness; it is ambient plumbing for a
// host embedding the engine, mirroring the definition.yaml convention
// used for database/table definitions elsewhere in this stack. The
// engine's own packages do not read a Config: a host passes the values
// it holds to the calls that take them (the façades' hint argument,
// exec.NewThreadPool's parallelism).
package ctablecfg

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/colplane/ctable/exec"
)

// smallBufferSize is the default per-column reader chunk size.
const smallBufferSize = 512

// minBatch and maxBatch are the batching-policy clamps.
const (
	minBatch = 64
	maxBatch = 1 << 20
)

// Config holds the tunables a host may override; every field has a
// hard-coded default applied by Defaults and by Load when the document
// omits it.
type Config struct {
	// ChunkSize is the default per-column reader buffer size, typically
	// 512.
	ChunkSize int `json:"chunkSize"`
	// WorkloadHint is the default hint for a host to pass to façade
	// calls; the façades take the hint as an explicit argument and do
	// not consult this field. One of "small", "default", "large",
	// "huge" (see exec.ParseWorkloadHint).
	WorkloadHint string `json:"workloadHint"`
	// ThreadPoolSize is the default worker count for a host to pass
	// when it constructs a pool. Zero means "let the thread-pool
	// provider decide" (the provider is an external collaborator of
	// this package).
	ThreadPoolSize int `json:"threadPoolSize"`
	// MinBatch and MaxBatch are the batching-policy clamps.
	MinBatch int `json:"minBatch"`
	MaxBatch int `json:"maxBatch"`
}

// Defaults returns the hard-coded defaults: ChunkSize 512, WorkloadHint
// "default", ThreadPoolSize 0 (provider decides), MinBatch 64, MaxBatch
// 1<<20.
func Defaults() Config {
	return Config{
		ChunkSize:      smallBufferSize,
		WorkloadHint:   "default",
		ThreadPoolSize: 0,
		MinBatch:       minBatch,
		MaxBatch:       maxBatch,
	}
}

// Hint resolves WorkloadHint to an exec.WorkloadHint, falling back to
// exec.Default (and ok=false) if the configured string is unrecognized.
func (c Config) Hint() (exec.WorkloadHint, bool) {
	return exec.ParseWorkloadHint(c.WorkloadHint)
}

// Load reads a YAML (or JSON, which is valid YAML) configuration
// document from path and overlays it onto Defaults(): a field the
// document omits, or sets to its zero value, keeps its default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ctablecfg: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document from data and overlays it onto
// Defaults(), the same way Load does for a file on disk.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Config{}, fmt.Errorf("ctablecfg: parsing config: %w", err)
	}
	if overlay.ChunkSize != 0 {
		cfg.ChunkSize = overlay.ChunkSize
	}
	if overlay.WorkloadHint != "" {
		cfg.WorkloadHint = overlay.WorkloadHint
	}
	if overlay.ThreadPoolSize != 0 {
		cfg.ThreadPoolSize = overlay.ThreadPoolSize
	}
	if overlay.MinBatch != 0 {
		cfg.MinBatch = overlay.MinBatch
	}
	if overlay.MaxBatch != 0 {
		cfg.MaxBatch = overlay.MaxBatch
	}
	return cfg, nil
}
