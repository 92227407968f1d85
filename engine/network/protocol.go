package network

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

const (
	// RECORD_SIZE is id, r, g, b.
	RECORD_SIZE = 4
	// MAX_RECORDS_PER_FRAME is the largest count the one-byte header can carry.
	MAX_RECORDS_PER_FRAME = 255
)

/**
 * @brief One colour assignment on the wire: [emitter id][r][g][b].
 */
type Record struct {
	ID uint8
	R  uint8
	G  uint8
	B  uint8
}

// Colour normalizes the 8-bit channels to [0, 1].
func (r Record) Colour() metadata.Colour {
	return metadata.NewColourFromBytes(r.R, r.G, r.B)
}

/**
 * @brief Reads one frame: a count byte followed by count records.
 * A stream that ends cleanly before the count byte returns io.EOF; one that
 * ends inside the records returns io.ErrUnexpectedEOF.
 */
func ReadFrame(r io.Reader) ([]Record, error) {
	var header [1]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	count := int(header[0])
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, count*RECORD_SIZE)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d records: %w", count, err)
	}
	records := make([]Record, count)
	for i := range records {
		off := i * RECORD_SIZE
		records[i] = Record{ID: buf[off], R: buf[off+1], G: buf[off+2], B: buf[off+3]}
	}
	return records, nil
}

// DecodeFrames decodes a buffer holding any number of whole frames.
func DecodeFrames(data []byte) ([]Record, error) {
	r := bytes.NewReader(data)
	var out []Record
	for {
		records, err := ReadFrame(r)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, records...)
	}
}

/**
 * @brief Encodes records as frames. Lists longer than MAX_RECORDS_PER_FRAME
 * are split over several frames. An empty list encodes to nothing.
 */
func EncodeFrame(records []Record) []byte {
	frames := (len(records) + MAX_RECORDS_PER_FRAME - 1) / MAX_RECORDS_PER_FRAME
	out := make([]byte, 0, frames+len(records)*RECORD_SIZE)
	for len(records) > 0 {
		n := min(len(records), MAX_RECORDS_PER_FRAME)
		out = append(out, byte(n))
		for _, rec := range records[:n] {
			out = append(out, rec.ID, rec.R, rec.G, rec.B)
		}
		records = records[n:]
	}
	return out
}
