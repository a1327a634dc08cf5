package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"xiangqi/internal/bench"
)

func main() {
	coefList := flag.String("coefs", "1,250", "comma separated ordering coefficients")
	depth := flag.Int("depth", 3, "search depth")
	fenFile := flag.String("fens", "", "file with one FEN per line, empty for the built-in suite")
	flag.Parse()

	coefs, err := parseCoefs(*coefList)
	if err != nil {
		log.Fatalf("coefs: %v", err)
	}
	fens := bench.DefaultPositions
	if *fenFile != "" {
		if fens, err = readFENs(*fenFile); err != nil {
			log.Fatalf("fens: %v", err)
		}
	}

	log.Printf("comparing %v over %d positions at depth %d", coefs, len(fens), *depth)
	stats, err := bench.CompareOrdering(context.Background(), fens, *depth, coefs)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}
	fmt.Print(bench.Format(stats))
}

func parseCoefs(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no coefficients in %q", s)
	}
	return out, nil
}

func readFENs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
