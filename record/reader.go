/*
 * reader.go, part of gohawp.
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
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/cmat"
	"github.com/rmera/gohawp/observables"
)

//Frame is one frame read from a record.
type Frame struct {
	T        float64
	Kind     string
	Eps      float64
	Params   []*hawp.ParameterSet
	Owners   []int //index in Params of the parameter set of each component
	Indices  [][][]int
	Coefs    []hawp.Coefficients
	Energies observables.Summary
}

//Packet rebuilds the packet stored in the frame. The shapes are rebuilt
//from the stored multi-indices.
func (F *Frame) Packet() (*hawp.Packet, error) {
	N := len(F.Coefs)
	shapes := make([]hawp.BasisShape, N)
	params := make([]*hawp.ParameterSet, N)
	for i := range F.Coefs {
		s, err := hawp.NewShape(F.Params[0].Dim(), F.Indices[i])
		if err != nil {
			return nil, hawp.ErrDecorate(err, "Frame.Packet")
		}
		shapes[i] = s
		params[i] = F.Params[F.Owners[i]]
	}
	//NewShape sorts the indices, so the coefficients are reordered to match.
	coefs := make([]hawp.Coefficients, N)
	for i, c := range F.Coefs {
		coefs[i] = make(hawp.Coefficients, len(c))
		for n, v := range c {
			m, _ := shapes[i].Index(F.Indices[i][n])
			coefs[i][m] = v
		}
	}
	var P *hawp.Packet
	var err error
	switch F.Kind {
	case hawp.Scalar.String():
		P, err = hawp.NewScalar(F.Eps, params[0], shapes[0], coefs[0])
	case hawp.Homogeneous.String():
		P, err = hawp.NewHomogeneous(F.Eps, params[0], shapes, coefs)
	case hawp.Inhomogeneous.String():
		P, err = hawp.NewInhomogeneous(F.Eps, params, shapes, coefs)
	default:
		err = fmt.Errorf("unknown packet kind %q", F.Kind)
	}
	if err != nil {
		return nil, hawp.ErrDecorate(err, "Frame.Packet")
	}
	return P, nil
}

//Reader reads frames from a record.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
}

//NewReader opens a record for reading, and returns the reader and the header,
//which is nil if the record has no header. The compression is chosen from
//the name as in NewWriter.
func NewReader(name string) (*Reader, map[string]string, error) {
	R := &Reader{filename: name}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{"can't open file: " + err.Error(), name, []string{"NewReader"}, true}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch {
	case strings.HasSuffix(name, ".gz"):
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case strings.HasSuffix(name, ".fl"):
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	default:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdql{r}, nil
		}
	}
	R.dec, err = AnyNewReader(bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, nil, Error{"can't read header: " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.h = bufio.NewReader(R.dec)
	var m map[string]string
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.close()
			return nil, nil, Error{"can't read header: " + err.Error(), name, []string{"NewReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "##") {
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			R.close()
			return nil, nil, Error{"malformed header line: " + str, name, []string{"NewReader"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[k] = v
	}
	R.readable = true
	return R, m, nil
}

//Readable returns true if it is possible to call Next on the reader.
func (R *Reader) Readable() bool { return R.readable }

//Close closes the reader, and marks it as unreadable
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.close()
}

func (R *Reader) close() {
	R.dec.Close()
	R.f.Close()
	R.readable = false
}

func (R *Reader) line() ([]string, error) {
	s, err := R.h.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return strings.Fields(s), nil
}

func (R *Reader) fail(msg string) error {
	return Error{msg, R.filename, []string{"Next"}, true}
}

func parseFloats(fields []string) ([]float64, error) {
	ret := make([]float64, len(fields))
	for i, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = f
	}
	return ret, nil
}

func complexes(f []float64) []complex128 {
	ret := make([]complex128, len(f)/2)
	for i := range ret {
		ret[i] = complex(f[2*i], f[2*i+1])
	}
	return ret
}

//Next reads the next frame of the record. At the end of the record it returns
//a LastFrameError, which wraps io.EOF, and closes the reader.
func (R *Reader) Next() (*Frame, error) {
	if !R.readable {
		return nil, Error{RecordUnIniRead, R.filename, []string{"Next"}, true}
	}
	head, err := R.line()
	if err == io.EOF && len(head) == 0 {
		R.close()
		return nil, newLastFrameError(R.filename, "Next")
	}
	if err != nil {
		return nil, R.fail(err.Error())
	}
	if len(head) != 7 || head[0] != "**" {
		return nil, R.fail(fmt.Sprintf("malformed frame header: %v", head))
	}
	F := &Frame{Kind: head[2]}
	var D, N, nps int
	if F.T, err = strconv.ParseFloat(head[1], 64); err != nil {
		return nil, R.fail(err.Error())
	}
	if F.Eps, err = strconv.ParseFloat(head[3], 64); err != nil {
		return nil, R.fail(err.Error())
	}
	for i, dst := range []*int{&D, &N, &nps} {
		if *dst, err = strconv.Atoi(head[4+i]); err != nil {
			return nil, R.fail(err.Error())
		}
	}
	for i := 0; i < nps; i++ {
		fields, err := R.line()
		if err != nil {
			return nil, R.fail(err.Error())
		}
		if len(fields) != 1+2*D+4*D*D+4 || fields[0] != "p" {
			return nil, R.fail(fmt.Sprintf("malformed parameter line with %d fields", len(fields)))
		}
		f, err := parseFloats(fields[1:])
		if err != nil {
			return nil, R.fail(err.Error())
		}
		Q := complexes(f[2*D : 2*D+2*D*D])
		P := complexes(f[2*D+2*D*D : 2*D+4*D*D])
		tail := complexes(f[2*D+4*D*D:])
		ps, err := hawp.NewParameterSet(f[:D], f[D:2*D], cmat.NewMatrix(D, D, Q), cmat.NewMatrix(D, D, P), tail[0])
		if err != nil {
			return nil, R.fail(err.Error())
		}
		ps.AlignSqrtDetQ(tail[1])
		F.Params = append(F.Params, ps)
	}
	for i := 0; i < N; i++ {
		fields, err := R.line()
		if err != nil {
			return nil, R.fail(err.Error())
		}
		if len(fields) != 3 || fields[0] != "c" {
			return nil, R.fail(fmt.Sprintf("malformed component line: %v", fields))
		}
		owner, err1 := strconv.Atoi(fields[1])
		n, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || owner < 0 || owner >= nps {
			return nil, R.fail(fmt.Sprintf("malformed component line: %v", fields))
		}
		F.Owners = append(F.Owners, owner)
		indices := make([][]int, n)
		c := make(hawp.Coefficients, n)
		for j := 0; j < n; j++ {
			fields, err := R.line()
			if err != nil {
				return nil, R.fail(err.Error())
			}
			if len(fields) != D+2 {
				return nil, R.fail(fmt.Sprintf("malformed coefficient line: %v", fields))
			}
			indices[j] = make([]int, D)
			for d := 0; d < D; d++ {
				if indices[j][d], err = strconv.Atoi(fields[d]); err != nil {
					return nil, R.fail(err.Error())
				}
			}
			f, err := parseFloats(fields[D:])
			if err != nil {
				return nil, R.fail(err.Error())
			}
			c[j] = complex(f[0], f[1])
		}
		F.Indices = append(F.Indices, indices)
		F.Coefs = append(F.Coefs, c)
	}
	fields, err := R.line()
	if err != nil || len(fields) != 4 || fields[0] != "*" {
		return nil, R.fail(fmt.Sprintf("can't read the frame termination mark: %v", fields))
	}
	e, err := parseFloats(fields[1:])
	if err != nil {
		return nil, R.fail(err.Error())
	}
	F.Energies = observables.Summary{Norm: e[0], Kinetic: e[1], Potential: e[2]}
	return F, nil
}
