package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/futsalboard/server/internal/domain"
)

// ParseImport reads a CSV or XLSX roster file from a multipart form file and
// returns the teams it describes. Expected columns: team, player. Rows are
// grouped by team in file order; players keep their row order.
func ParseImport(fh *multipart.FileHeader) ([]Team, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	file, err := fh.Open()
	if err != nil {
		return nil, domain.ErrParse("cannot open upload", err)
	}
	defer file.Close()

	switch ext {
	case ".csv":
		return parseCSV(file)
	case ".xlsx":
		b, err := io.ReadAll(io.LimitReader(file, 10<<20))
		if err != nil {
			return nil, domain.ErrParse("cannot read upload", err)
		}
		return parseXLSX(b)
	default:
		return nil, domain.ErrValidation("unsupported file type: %s", ext)
	}
}

func parseCSV(r io.Reader) ([]Team, error) {
	br := bufio.NewReader(r)
	// Peek first line to guess delimiter
	line, _ := br.ReadString('\n')
	rest := io.MultiReader(strings.NewReader(line), br)
	reader := csv.NewReader(rest)
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.ErrParse("invalid csv", err)
	}
	return rowsToTeams(rows)
}

func parseXLSX(b []byte) ([]Team, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, domain.ErrParse("invalid xlsx", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, domain.ErrParse("no sheet", nil)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.ErrParse("cannot read sheet", err)
	}
	return rowsToTeams(rows)
}

func rowsToTeams(rows [][]string) ([]Team, error) {
	if len(rows) == 0 {
		return nil, domain.ErrParse("empty file", nil)
	}
	headers := normHeaders(rows[0])
	teamCol, playerCol := -1, -1
	for i, h := range headers {
		switch h {
		case "team":
			teamCol = i
		case "player":
			playerCol = i
		}
	}
	if teamCol < 0 {
		return nil, domain.ErrParse("missing team column", nil)
	}

	get := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	index := map[string]int{}
	var teams []Team
	for _, row := range rows[1:] {
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		name := get(row, teamCol)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			t, err := NewTeam(name)
			if err != nil {
				return nil, err
			}
			teams = append(teams, t)
			i = len(teams) - 1
			index[name] = i
		}
		if player := get(row, playerCol); player != "" {
			if _, err := teams[i].AddPlayer(player); err != nil {
				return nil, err
			}
		}
	}
	if len(teams) == 0 {
		return nil, domain.ErrParse("no teams in file", nil)
	}
	return teams, nil
}

// normalize headers: lower, keep letters/digits only, common aliases
func normHeaders(hdr []string) map[int]string {
	m := make(map[int]string, len(hdr))
	for i, h := range hdr {
		k := strings.ToLower(strings.TrimSpace(h))
		b := strings.Builder{}
		for _, r := range k {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		k = b.String()
		switch k {
		case "teamname", "squad", "club":
			k = "team"
		case "playername", "member", "name":
			k = "player"
		}
		m[i] = k
	}
	return m
}
