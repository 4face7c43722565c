// Package parse turns command-line tokens and input files into number
// sequences.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
)

var errNotFinite = errors.New("not a finite number")

// Numbers converts fragments into numbers, ignoring whitespace. Each fragment
// may hold several whitespace-separated tokens; order is preserved.
//
//	Numbers([]string{"4", " 8 ", "15 16", " 23    42 "}) // [4 8 15 16 23 42]
func Numbers(fragments []string) ([]float64, error) {
	var tokens []string
	for _, f := range fragments {
		tokens = append(tokens, strings.Fields(f)...)
	}
	return convert("", tokens)
}

// Line converts a single line of whitespace-separated tokens.
func Line(line string) ([]float64, error) {
	return convert("", strings.Fields(line))
}

// FirstLine reads the first line of the file at path and converts its tokens.
// The rest of the file is never read and the line has no length limit.
func FirstLine(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileError("open", path, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewFileError("read", path, err)
	}
	return convert(path, strings.Fields(line))
}

func convert(source string, tokens []string) ([]float64, error) {
	out := make([]float64, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, apperrors.NewFormatError(source, tok, i, unwrapNumError(err))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apperrors.NewFormatError(source, tok, i, errNotFinite)
		}
		out = append(out, v)
	}
	return out, nil
}

// unwrapNumError drops strconv's "strconv.ParseFloat: parsing ..." prefix,
// which repeats the token already named by the FormatError.
func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return fmt.Errorf("parse number: %w", err)
}
