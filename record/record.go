/*
 * record.go, part of gohawp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package record

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/observables"
)

const flateLevel = 9

//Writer writes the frames of a trajectory to a compressed text file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	b         *bufio.Writer
	filename  string
	writeable bool
}

//NewWriter creates the file name and returns a Writer for it. The compression
//is chosen from the name: gzip for ".gz", flate for ".fl", and zstd otherwise.
//The header, if not nil, is written at the beginning of the file, sorted by key.
func NewWriter(name string, header map[string]string) (*Writer, error) {
	W := &Writer{filename: name}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{"can't create file: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch {
	case strings.HasSuffix(name, ".gz"):
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	case strings.HasSuffix(name, ".fl"):
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, flateLevel) }
	default:
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		}
	}
	W.h, err = AnyNewWriter(W.f)
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.b = bufio.NewWriter(W.h)
	keys := make([]string, 0, len(header))
	for k := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			log.Printf("Invalid header entry %q for record %s. Will skip it", k, name)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(W.b, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(W.b, "## gohawp record\n")
	W.writeable = true
	return W, nil
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func ctoa(z complex128) string { return ftoa(real(z)) + " " + ftoa(imag(z)) }

//WriteFrame writes the state of P at time t, and the observables e.
func (W *Writer) WriteFrame(t float64, P *hawp.Packet, e observables.Summary) error {
	if !W.writeable {
		return Error{RecordUnIniWrite, W.filename, []string{"WriteFrame"}, true}
	}
	ps := P.Params()
	D := P.Dim()
	fmt.Fprintf(W.b, "** %s %s %s %d %d %d\n", ftoa(t), P.Kind(), ftoa(P.Eps()), D, P.Len(), len(ps))
	for _, p := range ps {
		fields := make([]string, 0, 2*D+4*D*D+4)
		for _, v := range p.Pos {
			fields = append(fields, ftoa(v))
		}
		for _, v := range p.Mom {
			fields = append(fields, ftoa(v))
		}
		for _, M := range [2]interface{ At(int, int) complex128 }{p.Q, p.P} {
			for i := 0; i < D; i++ {
				for j := 0; j < D; j++ {
					fields = append(fields, ctoa(M.At(i, j)))
				}
			}
		}
		fields = append(fields, ctoa(p.S), ctoa(p.SqrtDetQ()))
		fmt.Fprintf(W.b, "p %s\n", strings.Join(fields, " "))
	}
	index := make(map[*hawp.ParameterSet]int, len(ps))
	for i, p := range ps {
		index[p] = i
	}
	ints := make([]string, D)
	for _, c := range P.Components() {
		fmt.Fprintf(W.b, "c %d %d\n", index[c.Params()], len(c.Coefficients))
		for n, v := range c.Coefficients {
			for d, k := range c.Shape.At(n) {
				ints[d] = strconv.Itoa(k)
			}
			fmt.Fprintf(W.b, "%s %s\n", strings.Join(ints, " "), ctoa(v))
		}
	}
	fmt.Fprintf(W.b, "* %s %s %s\n", ftoa(e.Norm), ftoa(e.Kinetic), ftoa(e.Potential))
	if err := W.b.Flush(); err != nil {
		return Error{"can't write frame: " + err.Error(), W.filename, []string{"WriteFrame"}, true}
	}
	return nil
}

//Close flushes and closes the file. The writer can't be used afterwards.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.b.Flush()
	if err2 := W.h.Close(); err == nil {
		err = err2
	}
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{"can't close file: " + err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//zstd.Decoder doesn't implement io.ReadCloser
type zstdql struct {
	*zstd.Decoder
}

//Close closes the decoder. It can not be used after this call
func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}
