package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"nobaidu/internal/store"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const rule = "------------------------------------------------------------"

// Report holds the findings of one run and implements scraper.Content.
type Report struct {
	id        string
	query     string
	mode      string
	startedAt time.Time
	findings  []store.Finding
}

// NewReport creates a new Report instance.
func NewReport(id, query, mode string, startedAt time.Time, findings []store.Finding) *Report {
	return &Report{id: id, query: query, mode: mode, startedAt: startedAt, findings: findings}
}

// Record returns the run in its persisted form.
func (r *Report) Record() *store.Run {
	return &store.Run{
		ID:        r.id,
		Query:     r.query,
		Mode:      r.mode,
		StartedAt: r.startedAt,
		Findings:  r.findings,
	}
}

func (r *Report) paragraphs() bool {
	return r.mode == ModePlus
}

func (r *Report) ToText() (string, error) {
	var sb strings.Builder
	if !r.paragraphs() {
		for _, f := range r.findings {
			sb.WriteString(f.URL + "\n")
		}
		return sb.String(), nil
	}

	sb.WriteString("最终结果：\n")
	sb.WriteString(rule + "\n")
	for i, f := range r.findings {
		sb.WriteString(fmt.Sprintf("段落 %d:\n", i+1))
		sb.WriteString(f.Text + "\n")
		sb.WriteString(rule + "\n")
	}
	return sb.String(), nil
}

func (r *Report) ToHTML() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s: %s</h1>\n", r.mode, html.EscapeString(r.query)))
	sb.WriteString(fmt.Sprintf("<p>%d results</p>\n<ol>\n", len(r.findings)))
	for _, f := range r.findings {
		link := fmt.Sprintf("<a href=%q>%s</a>", html.EscapeString(f.URL), html.EscapeString(f.URL))
		if !r.paragraphs() {
			sb.WriteString("  <li>" + link + "</li>\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("  <li><p>%s</p><p>%s</p></li>\n", html.EscapeString(f.Text), link))
	}
	sb.WriteString("</ol>\n")
	return sb.String(), nil
}

func (r *Report) ToMarkdown() (string, error) {
	h, err := r.ToHTML()
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

func (r *Report) ToJSON() ([]byte, error) {
	type jsonFinding struct {
		URL         string `json:"url"`
		Text        string `json:"text,omitempty"`
		LinkIndexed bool   `json:"link_indexed"`
	}
	type jsonReport struct {
		ID        string        `json:"id"`
		Query     string        `json:"query"`
		Mode      string        `json:"mode"`
		StartedAt time.Time     `json:"started_at"`
		Findings  []jsonFinding `json:"findings"`
	}

	out := jsonReport{
		ID:        r.id,
		Query:     r.query,
		Mode:      r.mode,
		StartedAt: r.startedAt,
		Findings:  make([]jsonFinding, 0, len(r.findings)),
	}
	for _, f := range r.findings {
		out.Findings = append(out.Findings, jsonFinding{URL: f.URL, Text: f.Text, LinkIndexed: f.LinkIndexed})
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r *Report) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"URL", "Text", "LinkIndexed"})
	for _, f := range r.findings {
		_ = w.Write([]string{f.URL, f.Text, strconv.FormatBool(f.LinkIndexed)})
	}
	w.Flush()
	return buf.String(), w.Error()
}
