package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rcwtools/paintsum/internal/model"
)

var phaseRe = regexp.MustCompile(`(?i)\bphase\s*[:#]?\s*(\w+)`)

// extractProjectMeta pulls the report header fields from the metadata
// block above the data region. Exports carry the project name in B3
// and the house/community string in B5; phase only appears in the
// filename.
func extractProjectMeta(f *excelize.File, sheet string) model.ProjectMeta {
	meta := model.ProjectMeta{
		ProjectName: cellValue(f, sheet, "B3"),
		HouseString: cellValue(f, sheet, "B5"),
		Phase:       phaseFromFilename(f.Path),
	}

	meta.ProjectName = strings.TrimSpace(strings.TrimPrefix(meta.ProjectName, "Project Name:"))

	return meta
}

func cellValue(f *excelize.File, sheet, cell string) string {
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func phaseFromFilename(path string) string {
	base := filepath.Base(path)
	if m := phaseRe.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return ""
}
