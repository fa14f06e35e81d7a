package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/user"
	util "github.com/saulo-duarte/quizmaster/internal/utils"
)

const monthlyWindowDays = 30

type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
}

type ScoreReader interface {
	StatsByUser(ctx context.Context) ([]attempt.UserScoreStats, error)
	ScoresBetween(ctx context.Context, from, to time.Time) ([]attempt.ScoreRow, error)
}

type Generator struct {
	users  UserLister
	scores ScoreReader
	now    func() time.Time
}

func NewGenerator(users UserLister, scores ScoreReader) *Generator {
	return &Generator{
		users:  users,
		scores: scores,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one report and tags the outcome.
func (g *Generator) Run(ctx context.Context, kind Kind) Result {
	log := config.WithContext(ctx).WithField("report", string(kind))

	switch kind {
	case KindUserCSV:
		out, err := g.UserActivityCSV(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to generate CSV report")
			return failure(fmt.Sprintf("Failed to generate CSV report: %v", err))
		}
		return success(out)
	case KindMonthly:
		out, err := g.MonthlyActivityHTML(ctx, g.now())
		if err != nil {
			log.WithError(err).Error("Failed to generate monthly report")
			return failure(fmt.Sprintf("Failed to generate monthly report: %v", err))
		}
		return success(out)
	default:
		return failure(fmt.Sprintf("unknown report %q", kind))
	}
}

type averageScore struct {
	total    int64
	attempts int64
}

// String renders 0 with no attempts, otherwise the mean rounded to two
// decimals and always with a fractional part ("4.0", "3.67").
func (a averageScore) String() string {
	if a.attempts == 0 {
		return "0"
	}
	mean := float64(a.total) / float64(a.attempts)
	s := strconv.FormatFloat(mean, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

type userActivityRow struct {
	UserID        uint   `csv:"User ID"`
	Email         string `csv:"Email"`
	FullName      string `csv:"Full Name"`
	Qualification string `csv:"Qualification"`
	DOB           string `csv:"DOB"`
	Role          string `csv:"Role"`
	QuizzesTaken  int64  `csv:"Quizzes Taken"`
	AverageScore  string `csv:"Average Score"`
}

// UserActivityCSV lists every user with their attempt count and mean score.
func (g *Generator) UserActivityCSV(ctx context.Context) (string, error) {
	users, err := g.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	stats, err := g.scores.StatsByUser(ctx)
	if err != nil {
		return "", fmt.Errorf("aggregate scores: %w", err)
	}

	byUser := make(map[uint]attempt.UserScoreStats, len(stats))
	for _, s := range stats {
		byUser[s.UserID] = s
	}

	rows := make([]*userActivityRow, 0, len(users))
	for _, u := range users {
		s := byUser[u.ID]
		rows = append(rows, &userActivityRow{
			UserID:        u.ID,
			Email:         u.Email,
			FullName:      u.FullName,
			Qualification: u.Qualification,
			DOB:           util.FormatDatePtr(u.DateOfBirth),
			Role:          u.Role,
			QuizzesTaken:  s.Attempts,
			AverageScore:  averageScore{total: s.Total, attempts: s.Attempts}.String(),
		})
	}

	return gocsv.MarshalString(&rows)
}

type attemptLine struct {
	QuizTitle   string
	Score       int
	AttemptedOn string
}

type userSection struct {
	FullName     string
	Email        string
	QuizzesTaken int
	AverageScore string
	Attempts     []attemptLine
}

type monthlyPage struct {
	From  string
	To    string
	Users []userSection
}

// MonthlyActivityHTML summarises the scores recorded since the start of the
// day thirty days before now, one section per user.
func (g *Generator) MonthlyActivityHTML(ctx context.Context, now time.Time) (string, error) {
	now = now.UTC()
	from := util.StartOfDay(now.AddDate(0, 0, -monthlyWindowDays))

	users, err := g.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	rows, err := g.scores.ScoresBetween(ctx, from, now)
	if err != nil {
		return "", fmt.Errorf("load recent scores: %w", err)
	}

	byUser := make(map[uint][]attempt.ScoreRow)
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row)
	}

	page := monthlyPage{
		From:  from.Format(util.DateLayout),
		To:    now.Format(util.DateLayout),
		Users: make([]userSection, 0, len(users)),
	}
	for _, u := range users {
		recent := byUser[u.ID]
		section := userSection{
			FullName:     u.FullName,
			Email:        u.Email,
			QuizzesTaken: len(recent),
		}
		var total int64
		for _, row := range recent {
			total += int64(row.Score)
			section.Attempts = append(section.Attempts, attemptLine{
				QuizTitle:   attempt.TitleOrUnknown(row.QuizTitle),
				Score:       row.Score,
				AttemptedOn: row.AttemptTimestamp.UTC().Format(util.DateTimeLayout),
			})
		}
		section.AverageScore = averageScore{total: total, attempts: int64(len(recent))}.String()
		page.Users = append(page.Users, section)
	}

	var buf bytes.Buffer
	if err := monthlyTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render monthly report: %w", err)
	}
	return buf.String(), nil
}

var monthlyTemplate = template.Must(template.New("monthly").Parse(`<html>
<head>
    <title>Monthly Activity Report - All Users</title>
    <style>
        body { font-family: sans-serif; background-color: #1a0f2d; color: #e0e0e0; margin: 0; padding: 20px; }
        .container { max-width: 900px; margin: 20px auto; background-color: #2b1a47; padding: 30px; border-radius: 15px; border: 1px solid #4a2d73; }
        h2 { color: #e060a8; text-align: center; margin-bottom: 20px; }
        h3 { color: #5dbeff; margin-top: 30px; border-bottom: 1px solid #4a2d73; padding-bottom: 5px; }
        table { width: 100%; border-collapse: collapse; margin-top: 15px; }
        th, td { border: 1px solid #4a2d73; padding: 12px; text-align: left; }
        th { background-color: #3d2766; color: #e060a8; }
        .footer { margin-top: 40px; text-align: center; font-size: 0.9em; color: #6a4a9c; }
    </style>
</head>
<body>
<div class="container">
    <h2>Consolidated Monthly Activity Report</h2>
    <p>Report Period: {{.From}} to {{.To}}</p>
{{- range .Users}}
    <div class="user-report-section">
        <h3>For {{.FullName}} ({{.Email}})</h3>
        <p><strong>Total Quizzes Taken:</strong> {{.QuizzesTaken}}</p>
        <p><strong>Average Score:</strong> {{.AverageScore}}%</p>
        <h4>Recent Quiz Attempts:</h4>
        <table>
            <thead>
                <tr><th>Quiz Title</th><th>Score</th><th>Attempted On</th></tr>
            </thead>
            <tbody>
{{- range .Attempts}}
                <tr><td>{{.QuizTitle}}</td><td>{{.Score}}</td><td>{{.AttemptedOn}}</td></tr>
{{- else}}
                <tr><td colspan="3">No recent quiz attempts.</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
    <hr>
{{- else}}
    <p style="text-align: center;">No users found to generate reports for.</p>
{{- end}}
    <p class="footer">Generated by Quiz Master. Keep practicing!</p>
</div>
</body>
</html>
`))
