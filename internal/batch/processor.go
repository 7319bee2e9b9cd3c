// Package batch handles batch country lookups from stdin.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/filter"
	"github.com/hightemp/countrypicker/internal/output"
)

// Mode selects how input lines are interpreted.
type Mode int

const (
	// ModeCode treats each line as an ISO 3166-1 alpha-2 code.
	ModeCode Mode = iota
	// ModeSearch treats each line as a search query.
	ModeSearch
)

// ErrNotFound is the error text for codes missing from the catalog.
const ErrNotFound = "country not found"

// Processor handles batch lookups against one list of countries.
type Processor struct {
	list     []countries.Country
	language string
	mode     Mode
	log      logrus.FieldLogger
}

// NewProcessor creates a new batch processor. list is typically the
// whitelisted catalog.
func NewProcessor(list []countries.Country, language string, mode Mode, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		list:     list,
		language: language,
		mode:     mode,
		log:      log,
	}
}

// ProcessInput reads lines from r and writes results to w. Text output is
// streamed; JSON output is collected into one array.
func (p *Processor) ProcessInput(r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var results []*output.CountryResult
	lines := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines++

		lineResults := p.processLine(line)
		if jsonOutput {
			results = append(results, lineResults...)
			continue
		}
		for _, res := range lineResults {
			fmt.Fprintln(w, res.FormatText())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"lines": lines,
		"mode":  p.mode,
	}).Debug("Batch processed")

	if jsonOutput {
		list := &output.ListResult{Results: results}
		jsonStr, err := list.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, jsonStr)
	}
	return nil
}

func (p *Processor) processLine(line string) []*output.CountryResult {
	if p.mode == ModeSearch {
		var results []*output.CountryResult
		for _, c := range p.list {
			if !filter.Match(c, line) {
				continue
			}
			result := output.NewCountryResult(c, p.language)
			result.Input = line
			results = append(results, result)
		}
		return results
	}

	c, ok := countries.FindByCode(p.list, line)
	if !ok {
		return []*output.CountryResult{{Input: line, Error: ErrNotFound}}
	}
	result := output.NewCountryResult(c, p.language)
	result.Input = line
	return []*output.CountryResult{result}
}

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "code"
}
