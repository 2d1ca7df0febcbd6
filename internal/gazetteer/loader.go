package gazetteer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"

	"github.com/address-resolver/app/models"
)

// era start years for Japanese-calendar effective dates
var eraBase = map[string]int{
	"昭和": 1925,
	"平成": 1988,
	"令和": 2018,
}

var (
	reEraDate = regexp.MustCompile(`(昭和|平成|令和)(\d+|元)年(\d+)月(\d+)日`)
	reISODate = regexp.MustCompile(`^(\d{4})[-/年](\d{1,2})[-/月](\d{1,2})日?$`)
	reReading = regexp.MustCompile(`（([^）]*)）`)
	reCounty  = regexp.MustCompile(`^.*?郡`)
)

// Loader reads municipality change records from gazetteer CSV files.
// Expected columns: prefecture, old names, new name, effective date, kind.
// The old-name column may list several municipalities separated by 、 with
// later entries abbreviating the county as 同郡.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

// LoadFile reads a gazetteer CSV from path.
func (l *Loader) LoadFile(path string) ([]models.GazetteerEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads gazetteer CSV records from r. A header row is detected and
// skipped; blank and short rows are ignored.
func (l *Loader) Load(r io.Reader) ([]models.GazetteerEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var events []models.GazetteerEvent
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gazetteer csv line %d: %w", line+1, err)
		}
		line++
		if len(rec) < 4 {
			continue
		}
		if line == 1 && (rec[0] == "都道府県" || strings.EqualFold(rec[0], "prefecture")) {
			continue
		}
		evs, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("gazetteer csv line %d: %w", line, err)
		}
		events = append(events, evs...)
	}
	return events, nil
}

// parseRecord expands one CSV row into one event per listed old name.
func parseRecord(rec []string) ([]models.GazetteerEvent, error) {
	prefecture := strings.TrimSpace(rec[0])
	newName := stripReading(strings.TrimSpace(rec[2]))
	date, err := ParseDate(strings.TrimSpace(rec[3]))
	if err != nil {
		return nil, err
	}
	kind := models.ChangeConsolidation
	if len(rec) > 4 && strings.Contains(rec[4], "編入") {
		kind = models.ChangeAbsorption
	}

	var events []models.GazetteerEvent
	county := ""
	for _, raw := range strings.Split(rec[1], "、") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		reading := extractReading(raw)
		name := stripReading(raw)
		// 同郡X町 inherits the county of the previous entry in the row.
		if strings.HasPrefix(name, "同郡") {
			name = county + strings.TrimPrefix(name, "同郡")
		} else if m := reCounty.FindString(name); m != "" {
			county = m
		}
		if name == "" || name == newName {
			continue
		}
		events = append(events, models.GazetteerEvent{
			Prefecture:    prefecture,
			OldName:       name,
			NewName:       newName,
			EffectiveDate: date,
			Kind:          kind,
			Reading:       reading,
			ReadingASCII:  unidecode.Unidecode(reading),
		})
	}
	return events, nil
}

func extractReading(s string) string {
	m := reReading.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

func stripReading(s string) string {
	return reReading.ReplaceAllString(s, "")
}

// ParseDate parses an effective date written either in the Japanese calendar
// (平成17年1月1日, 令和元年5月1日) or as an ISO-style date (2005-01-01,
// 2005/1/1, 2005年1月1日).
func ParseDate(s string) (time.Time, error) {
	if m := reEraDate.FindStringSubmatch(s); m != nil {
		year := 1
		if m[2] != "元" {
			y, err := strconv.Atoi(m[2])
			if err != nil {
				return time.Time{}, fmt.Errorf("era year %q: %w", m[2], err)
			}
			year = y
		}
		month, _ := strconv.Atoi(m[3])
		day, _ := strconv.Atoi(m[4])
		return time.Date(eraBase[m[1]]+year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}
	if m := reISODate.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
