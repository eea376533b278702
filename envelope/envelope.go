/*
Copyright © 2026 The ww2-cryptography Authors

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

// Package envelope wraps enciphered text for storage or transport.  A message
// is either plain (the ciphertext as is), binary (a header line followed by
// the raw body), ASCII85 (a header line followed by ASCII85 lines) or a PEM
// block.  The body may be compressed with flate.
package envelope

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
)

// Encoding selects how a message body is written.
type Encoding int

const (
	Plain Encoding = iota
	Binary
	ASCII85
	PEM
)

const (
	headerTag = "+WW2"
	pemType   = "WW2 Encrypted Message"
)

// ErrBadHeader is returned for a header line that cannot be parsed.
var ErrBadHeader = errors.New("bad envelope header")

// Header describes an enciphered message.  The indicator carries the start
// positions of the machine, never its key.
type Header struct {
	Machine     string
	Indicator   string
	MessageID   string
	Compression bool
	Encoding    Encoding
}

// FormatLine returns the header line written before binary and ASCII85
// bodies, including the trailing newline.
func (h Header) FormatLine() string {
	enc := "b"
	if h.Encoding == ASCII85 {
		enc = "a"
	}
	return fmt.Sprintf("%s|%s|%s|%v|%s|%s\n", headerTag, h.Machine, enc, h.Compression, h.Indicator, h.MessageID)
}

// ParseLine parses a header line written by FormatLine.  The trailing newline
// is optional.
func ParseLine(line string) (Header, error) {
	var h Header
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) != 6 || fields[0] != headerTag {
		return h, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}

	switch fields[2] {
	case "a":
		h.Encoding = ASCII85
	case "b":
		h.Encoding = Binary
	default:
		return h, fmt.Errorf("%w: unknown encoding %q", ErrBadHeader, fields[2])
	}

	h.Machine = fields[1]
	h.Compression = fields[3] == "true"
	h.Indicator = fields[4]
	h.MessageID = fields[5]
	return h, nil
}

func (h Header) pemBlock() pem.Block {
	var blck pem.Block
	blck.Type = pemType
	blck.Headers = make(map[string]string)
	blck.Headers["Machine"] = h.Machine
	blck.Headers["Indicator"] = h.Indicator
	blck.Headers["Compression"] = fmt.Sprintf("%v", h.Compression)
	if h.MessageID != "" {
		blck.Headers["MessageID"] = h.MessageID
	}
	return blck
}

func fromPemBlock(blck pem.Block) Header {
	h := Header{Encoding: PEM}
	h.Machine = blck.Headers["Machine"]
	h.Indicator = blck.Headers["Indicator"]
	h.MessageID = blck.Headers["MessageID"]
	h.Compression = blck.Headers["Compression"] == "true"
	return h
}

// pipeHelper provides the means to inject any reader into the pipe streams
// used by the filters.  The data can be read using the returned PipeReader.
func pipeHelper(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		_, err := io.Copy(rWrtr, rdr)
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// Write writes body to w wrapped as described by h.  A compressed message
// cannot be plain; it is written as binary instead.
func Write(w io.Writer, body io.Reader, h Header) error {
	if h.Compression && h.Encoding == Plain {
		h.Encoding = Binary
	}

	src := pipeHelper(body)
	if h.Compression {
		src = pipeHelper(flate.ToFlate(src))
	}

	var err error
	switch h.Encoding {
	case Plain:
		_, err = io.Copy(w, src)
	case Binary:
		if _, err = io.WriteString(w, h.FormatLine()); err == nil {
			_, err = io.Copy(w, src)
		}
	case ASCII85:
		if _, err = io.WriteString(w, h.FormatLine()); err == nil {
			_, err = io.Copy(w, lines.SplitToLines(ascii85.ToASCII85(src)))
		}
	case PEM:
		_, err = io.Copy(w, pem.ToPem(bufio.NewReader(src), h.pemBlock()))
	default:
		err = fmt.Errorf("unknown encoding %d", h.Encoding)
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return err
}

// Read detects how the message in r is wrapped and returns a reader for the
// unwrapped, decompressed body.  Text without a header is returned as a plain
// message.
func Read(r io.Reader) (io.Reader, Header, error) {
	bRdr := bufio.NewReader(r)
	b, err := bRdr.Peek(len(headerTag) + 1)
	if err != nil && err != io.EOF {
		return nil, Header{}, err
	}

	var h Header
	var body *io.PipeReader
	switch {
	case strings.HasPrefix(string(b), "-----"):
		var blck pem.Block
		body, blck = pem.FromPem(bRdr)
		h = fromPemBlock(blck)
	case string(b) == headerTag+"|":
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return nil, Header{}, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		if h, err = ParseLine(line); err != nil {
			return nil, Header{}, err
		}
		if h.Encoding == ASCII85 {
			body = ascii85.FromASCII85(lines.CombineLines(bRdr))
		} else {
			body = pipeHelper(bRdr)
		}
	default:
		return bRdr, Header{Encoding: Plain}, nil
	}

	if h.Compression {
		body = flate.FromFlate(body)
	}
	return body, h, nil
}
