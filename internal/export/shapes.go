package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/models"
)

// SectionSummaryRow carries everything one section export row needs.
type SectionSummaryRow struct {
	SectionNo string
	Content   string
	Tally     aggregate.Tally
	Comments  []models.Comment
}

// SectionSummaryCSV renders one row per section: label, body text, vote
// counts and a newline-joined "commenter: comment" cell.
func SectionSummaryCSV(rows []SectionSummaryRow) []byte {
	header := []string{"Section No", "Content", "Agree Votes", "Disagree Votes", "Comments"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		pairs := make([]string, 0, len(r.Comments))
		for _, c := range r.Comments {
			name := c.AuthorName
			if name == "" {
				name = "Anonymous"
			}
			pairs = append(pairs, name+": "+c.Content)
		}
		out = append(out, []string{
			r.SectionNo,
			r.Content,
			strconv.Itoa(r.Tally.Agree),
			strconv.Itoa(r.Tally.Disagree),
			strings.Join(pairs, "\n"),
		})
	}
	return ToCSV(header, out)
}

// SurveyWideCSV renders one row per respondent with two columns per
// question (answer, comment), columns ordered by the survey's display
// order. Questions a respondent skipped produce empty strings in both
// columns, so every row has the same width: the document stays
// rectangular at 2 + 2×len(questions) columns.
func SurveyWideCSV(questions []models.SurveyQuestion, respondents []aggregate.Respondent) []byte {
	header := make([]string, 0, 2+2*len(questions))
	header = append(header, "Date", "Respondent")
	for _, q := range questions {
		header = append(header, q.Question, "Comment")
	}

	rows := make([][]string, 0, len(respondents))
	for _, r := range respondents {
		byQuestion := make(map[string]aggregate.Answer, len(r.Answers))
		for _, a := range r.Answers {
			byQuestion[a.QuestionID] = a
		}

		row := make([]string, 0, len(header))
		row = append(row, r.LatestAt.UTC().Format(time.RFC3339), r.DisplayName)
		for _, q := range questions {
			if a, ok := byQuestion[q.ID]; ok {
				row = append(row, a.Answer, a.Comment)
			} else {
				row = append(row, "", "")
			}
		}
		rows = append(rows, row)
	}
	return ToCSV(header, rows)
}
