/*
 * NETCAP - Traffic Analysis Framework
 * Copyright (c) 2017-2020 Philipp Mieden <dreadl0ck [at] protonmail [dot] ch>
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package capture

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// Replayer re-synthesizes DatagramRecords from a dump, sleeping between
// records so their arrival is paced against the recorded timestamps
// scaled by timeScale — grounded on main.cpp's replay loop,
// `(now - base) * time_scale` against the recorded timestamp.
type Replayer struct {
	r         io.Reader
	timeScale float64

	started      bool
	baseWall     time.Time
	baseRecorded int32
}

// NewReplayer wraps r, multiplying each record's recorded time offset by
// timeScale, so a larger value replays more slowly. A timeScale of 1 reproduces the original capture's pacing; 0 or negative
// disables pacing (records are emitted as fast as they can be read).
func NewReplayer(r io.Reader, timeScale float64) *Replayer {
	return &Replayer{r: r, timeScale: timeScale}
}

// Next reads the next record, sleeping first if pacing is enabled and the
// wall clock hasn't yet reached this record's scaled recorded time.
func (p *Replayer) Next() (DatagramRecord, error) {
	rec, err := ReadDump(p.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return DatagramRecord{}, io.EOF
		}

		return DatagramRecord{}, err
	}

	if p.timeScale <= 0 {
		return rec, nil
	}

	if !p.started {
		p.started = true
		p.baseWall = time.Now()
		p.baseRecorded = rec.TimestampMs
	}

	elapsedRecorded := time.Duration(rec.TimestampMs-p.baseRecorded) * time.Millisecond
	target := p.baseWall.Add(time.Duration(float64(elapsedRecorded) * p.timeScale))

	if d := time.Until(target); d > 0 {
		time.Sleep(d)
	}

	return rec, nil
}
