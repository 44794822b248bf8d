package extract

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"aasb_statements/pkg/models"
)

// TextExtractor recovers line items and structural metadata from the pages
// of a prior-year printed report, already decoded to plain text. It shares
// the category vocabulary and sign policy of RowExtractor but works on
// newline-separated lines, and only inside a recognized statement section:
// a category keyword in a narrative note never populates the dataset.
type TextExtractor struct {
	pages []string
	opts  Options
}

// NewTextExtractor wraps the decoded page texts of one report.
func NewTextExtractor(pages []string, opts Options) *TextExtractor {
	return &TextExtractor{pages: pages, opts: opts}
}

// section is the current position of the heading state machine.
type section int

const (
	sectionNone section = iota
	sectionIncome
	sectionBalance
)

var (
	incomeHeading  = regexp.MustCompile(`(?i)Statement of Profit or Loss|Income Statement|Profit and Loss`)
	balanceHeading = regexp.MustCompile(`(?i)Statement of Financial Position|Balance Sheet`)
	otherHeading   = regexp.MustCompile(`(?i)Notes to the Financial Statements|Directors' Declaration|Compilation Report|Statement of Changes in Equity|Statement of Cash Flows|^\s*Contents\s*$`)

	reportYearPattern = regexp.MustCompile(`For the Year Ended 30 June (\d{4})`)
	contentsEntry     = regexp.MustCompile(`^(\d+)\.\s+(.+?)(?:\s+(\d+))?$`)
	noteHeadingLine   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	directorNameTrim  = regexp.MustCompile(`[_\d\s]+Date.*`)
	notesHeading      = regexp.MustCompile(`(?i)Notes to the Financial Statements`)
	declarationTitle  = regexp.MustCompile(`(?i)Directors' Declaration`)
	compilationTitle  = regexp.MustCompile(`(?i)Compilation Report|Independent Compilation`)
	headEntityPattern = regexp.MustCompile(`(?i)head entity[:\s]+([A-Za-z\s]+(?:Pty|Ltd|Limited))`)
)

// LineItems extracts the income statement and balance sheet datasets from
// the statement sections of the report.
func (x *TextExtractor) LineItems() (income, balance models.Dataset) {
	income = models.NewDataset()
	balance = models.NewDataset()
	incomeRules := IncomeStatementRules()
	balanceRules := BalanceSheetRules(x.opts)

	state := sectionNone
	lineInSection := 0
	for _, page := range x.pages {
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			switch {
			case incomeHeading.MatchString(trimmed):
				state = sectionIncome
				lineInSection = 0
				continue
			case balanceHeading.MatchString(trimmed):
				state = sectionBalance
				lineInSection = 0
				continue
			case otherHeading.MatchString(trimmed):
				state = sectionNone
				continue
			}

			switch state {
			case sectionIncome:
				applyLine(income, incomeRules, trimmed, lineInSection)
			case sectionBalance:
				applyLine(balance, balanceRules, trimmed, lineInSection)
			}
			lineInSection++
		}
	}
	log.Printf("[TextExtractor] prior year: %d income, %d balance categories populated",
		income.Len(), balance.Len())
	return income, balance
}

// applyLine runs the rule table over one statement line. Same claim
// semantics as rows: the first matching rule consumes the line, a populated
// category keeps its first value.
func applyLine(ds models.Dataset, rules []MatchRule, line string, index int) {
	text := strings.ToLower(line)
	for _, rule := range rules {
		if ds.Has(rule.Category) {
			continue
		}
		if !rule.Match(text, index) {
			continue
		}
		if v, ok := LineAmount(line); ok {
			if rule.Sign == SignMagnitude && v < 0 {
				v = -v
			}
			ds.Set(rule.Category, v)
		}
		return
	}
}

// EntityName reads the entity name from the title page, printed on the line
// after "Financial Statements".
func (x *TextExtractor) EntityName() (string, bool) {
	if len(x.pages) == 0 {
		return "", false
	}
	lines := strings.Split(x.pages[0], "\n")
	for i, line := range lines {
		if strings.Contains(line, "Financial Statements") && i+1 < len(lines) {
			name := strings.TrimSpace(lines[i+1])
			if name != "" && name != "For the Year Ended" {
				return name, true
			}
		}
	}
	return "", false
}

// ReportYear returns the reporting year from the "For the Year Ended
// 30 June YYYY" cover line.
func (x *TextExtractor) ReportYear() (int, bool) {
	for _, page := range x.pages {
		if m := reportYearPattern.FindStringSubmatch(page); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				return year, true
			}
		}
	}
	return 0, false
}

// Contents parses the numbered contents page into section entries with page
// numbers where printed.
func (x *TextExtractor) Contents() []models.SectionEntry {
	var entries []models.SectionEntry
	for _, page := range x.pages {
		if !strings.Contains(strings.ToLower(page), "contents") {
			continue
		}
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			m := contentsEntry.FindStringSubmatch(trimmed)
			if m == nil || strings.EqualFold(trimmed, "contents") {
				continue
			}
			num, _ := strconv.Atoi(m[1])
			entry := models.SectionEntry{Number: num, Title: strings.TrimSpace(m[2])}
			if m[3] != "" {
				entry.Page, _ = strconv.Atoi(m[3])
			}
			entries = append(entries, entry)
		}
		break
	}
	return entries
}

// Notes collects the numbered note headings and their body lines from the
// notes section, terminating at the directors' declaration.
func (x *TextExtractor) Notes() []models.Note {
	var notes []models.Note
	inNotes := false
	for _, page := range x.pages {
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case notesHeading.MatchString(trimmed):
				inNotes = true
				continue
			case declarationTitle.MatchString(trimmed):
				inNotes = false
				continue
			}
			if !inNotes || trimmed == "" {
				continue
			}
			if m := noteHeadingLine.FindStringSubmatch(trimmed); m != nil {
				num, _ := strconv.Atoi(m[1])
				notes = append(notes, models.Note{Number: num, Heading: strings.TrimSpace(m[2])})
				continue
			}
			if len(notes) > 0 {
				last := &notes[len(notes)-1]
				last.Content = append(last.Content, trimmed)
			}
		}
	}
	return notes
}

// Directors reads the signature blocks of the directors' declaration. A
// signatory is a name line directly above a title line containing
// "Director", with date and underscore markers stripped from the name.
func (x *TextExtractor) Directors() []models.Director {
	var directors []models.Director
	inDeclaration := false
	for _, page := range x.pages {
		lines := strings.Split(page, "\n")
		for i, line := range lines {
			switch {
			case declarationTitle.MatchString(line):
				inDeclaration = true
				continue
			case compilationTitle.MatchString(line) || notesHeading.MatchString(line):
				// next section title ends the declaration
				inDeclaration = false
				continue
			}
			if !inDeclaration || i+1 >= len(lines) {
				continue
			}
			nameLine := strings.TrimSpace(lines[i])
			titleLine := strings.TrimSpace(lines[i+1])
			if nameLine == "" || !strings.Contains(titleLine, "Director") {
				continue
			}
			name := strings.TrimSpace(directorNameTrim.ReplaceAllString(nameLine, ""))
			if len(name) > 3 {
				directors = append(directors, models.Director{Name: name, Title: titleLine})
			}
		}
	}
	return directors
}

// CompilerInfo reads the compilation report signatory: the name and title
// printed after the signature rule or date line.
func (x *TextExtractor) CompilerInfo() (models.Compiler, bool) {
	for _, page := range x.pages {
		if !compilationTitle.MatchString(page) {
			continue
		}
		lines := strings.Split(page, "\n")
		for i, line := range lines {
			if !strings.Contains(line, "_____") && !strings.Contains(line, "Date:") {
				continue
			}
			if i+2 >= len(lines) {
				continue
			}
			name := strings.TrimSpace(lines[i+1])
			title := strings.TrimSpace(lines[i+2])
			if name != "" && title != "" {
				return models.Compiler{Name: name, Title: title}, true
			}
		}
	}
	return models.Compiler{}, false
}

// TaxHeadEntity returns the tax consolidation head entity named in the
// income tax note.
func (x *TextExtractor) TaxHeadEntity() (string, bool) {
	for _, page := range x.pages {
		if !strings.Contains(page, "Note 3") && !strings.Contains(page, "3.") {
			continue
		}
		if m := headEntityPattern.FindStringSubmatch(page); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// ContingentLiability returns the contingent liability wording with a few
// lines of surrounding context, for continuity checking against the current
// filing.
func (x *TextExtractor) ContingentLiability() (string, bool) {
	for _, page := range x.pages {
		if !strings.Contains(strings.ToLower(page), "contingent") {
			continue
		}
		lines := strings.Split(page, "\n")
		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), "contingent") {
				continue
			}
			lo := i - 2
			if lo < 0 {
				lo = 0
			}
			hi := i + 5
			if hi > len(lines) {
				hi = len(lines)
			}
			return strings.TrimSpace(strings.Join(lines[lo:hi], "\n")), true
		}
	}
	return "", false
}
