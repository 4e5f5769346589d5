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

package cleansweep

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r, err := New(NewConfig())
	require.NoError(t, err)
	require.NoError(t, r.Start())
	t.Cleanup(func() {
		r.Stop() //nolint:errcheck
	})
	require.NotNil(t, r.DB())
}

func TestRegistryMetricsListener(t *testing.T) {
	// Grab a free port for the listener
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	r, err := New(NewConfig(
		WithMetricsPort(uint(port)), //nolint:gosec
	))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	t.Cleanup(func() {
		r.Stop() //nolint:errcheck
	})

	// The listener starts in the background, so retry until it's up
	url := fmt.Sprintf("http://127.0.0.1:%d/metrics", port)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
