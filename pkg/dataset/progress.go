/*
Copyright The Dataprep Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dataset

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// progressMeter counts bytes as they are streamed to disk and renders a
// single-line progress display when the output is a terminal. It is an
// observable side effect only: an unknown total (<= 0) degrades to a plain
// byte count, never a failure.
type progressMeter struct {
	out        io.Writer
	name       string
	total      int64
	written    int64
	isTerm     bool
	lastRender time.Time
}

func newProgressMeter(out io.Writer, name string, total int64) *progressMeter {
	isTerm := false
	if f, ok := out.(*os.File); ok {
		isTerm = term.IsTerminal(int(f.Fd()))
	}
	return &progressMeter{out: out, name: name, total: total, isTerm: isTerm}
}

func (pm *progressMeter) Write(b []byte) (int, error) {
	pm.written += int64(len(b))
	if pm.isTerm && time.Since(pm.lastRender) > 100*time.Millisecond {
		pm.render()
		pm.lastRender = time.Now()
	}
	return len(b), nil
}

func (pm *progressMeter) render() {
	if pm.total > 0 {
		fmt.Fprintf(pm.out, "\r%s: %s / %s (%d%%)", pm.name,
			fmtBytes(pm.written), fmtBytes(pm.total), pm.written*100/pm.total)
		return
	}
	fmt.Fprintf(pm.out, "\r%s: %s", pm.name, fmtBytes(pm.written))
}

// finish draws the final state and terminates the progress line.
func (pm *progressMeter) finish() {
	if pm.isTerm {
		pm.render()
		fmt.Fprintln(pm.out)
	}
}

func fmtBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
