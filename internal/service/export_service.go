package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"
)

// AnalysisCSVHeaders are the fixed columns of the analysis-table extract.
var AnalysisCSVHeaders = []string{
	"Exercicio",
	"Categoria",
	"Carga Atual (kg)",
	"Recorde Pessoal (kg)",
	"Progresso (%)",
	"Ultima Atualizacao",
}

// ExportService assembles the downloadable report blobs. Serialization to an
// actual file is the client's job; from here both exports are fire-and-forget.
type ExportService interface {
	// DashboardCSV builds the three-section report: profile fields,
	// exercise rows, and goal rows (the goal section is omitted when empty).
	DashboardCSV(ctx context.Context, userID string, timeframe Timeframe) (string, error)
	// DashboardReport renders the same data as a printable HTML document.
	DashboardReport(ctx context.Context, userID string, timeframe Timeframe) (string, error)
}

type exportService struct {
	exerciseRepo repository.ExerciseRepository
	goalRepo     repository.GoalRepository
	profileRepo  repository.ProfileRepository
}

// NewExportService creates a new instance of exportService.
func NewExportService(
	exerciseRepo repository.ExerciseRepository,
	goalRepo repository.GoalRepository,
	profileRepo repository.ProfileRepository,
) ExportService {
	return &exportService{
		exerciseRepo: exerciseRepo,
		goalRepo:     goalRepo,
		profileRepo:  profileRepo,
	}
}

func (s *exportService) DashboardCSV(ctx context.Context, userID string, timeframe Timeframe) (string, error) {
	profile, exercises, goals, err := s.loadAll(ctx, userID)
	if err != nil {
		return "", err
	}
	return BuildDashboardCSV(profile, exercises, goals, timeframe), nil
}

func (s *exportService) DashboardReport(ctx context.Context, userID string, timeframe Timeframe) (string, error) {
	profile, exercises, goals, err := s.loadAll(ctx, userID)
	if err != nil {
		return "", err
	}
	return BuildDashboardReport(profile, exercises, goals, timeframe, time.Now())
}

func (s *exportService) loadAll(ctx context.Context, userID string) (*domain.UserProfile, []domain.Exercise, []domain.Goal, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, err
		}
		profile = &domain.UserProfile{
			UserID: userID,
			Name:   "Atleta Evolution",
			Weight: domain.DefaultProfileWeight,
			Level:  domain.DefaultProfileLevel,
		}
	}
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	goals, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile, exercises, goals, nil
}

// BuildDashboardCSV assembles the full-dashboard extract: a profile section,
// a seven-column exercise section, and a two-column goal section.
func BuildDashboardCSV(profile *domain.UserProfile, exercises []domain.Exercise, goals []domain.Goal, timeframe Timeframe) string {
	var b strings.Builder
	b.WriteString("RELATÓRIO EVOLUTION - DASHBOARD DE PERFORMANCE\n\n")

	b.WriteString("PERFIL DO ATLETA\n")
	fmt.Fprintf(&b, "Nome,%s\n", profile.Name)
	fmt.Fprintf(&b, "Peso,%s kg\n", formatNumber(profile.Weight))
	fmt.Fprintf(&b, "Nível,%s\n", profile.Level)
	fmt.Fprintf(&b, "Período,%s\n\n", timeframe.Label())

	b.WriteString("EXERCÍCIOS\n")
	b.WriteString("Nome,Última Carga,Data Última Carga,Recorde Pessoal,Data RP,Volume Médio,Progresso\n")
	for _, ex := range exercises {
		fmt.Fprintf(&b, "%s,%s kg,%s,%s kg,%s,%s kg,%d%%\n",
			ex.Name,
			formatNumber(ex.LastWeight), ex.LastDate,
			formatNumber(ex.PBWeight), ex.PBDate,
			formatNumber(ex.AvgVolume), ex.Progress,
		)
	}

	if len(goals) > 0 {
		b.WriteString("\nMETAS\n")
		b.WriteString("Título,Descrição\n")
		for _, goal := range goals {
			fmt.Fprintf(&b, "%s,%q\n", goal.Title, goal.Description)
		}
	}
	return b.String()
}

// BuildAnalysisCSV extracts the currently filtered analysis rows, one line
// per exercise, name/category/date quoted.
func BuildAnalysisCSV(exercises []domain.Exercise) string {
	lines := make([]string, 0, len(exercises)+1)
	lines = append(lines, strings.Join(AnalysisCSVHeaders, ","))
	for _, ex := range exercises {
		lines = append(lines, fmt.Sprintf("%q,%q,%s,%s,%d,%q",
			ex.Name, ex.Category,
			formatNumber(ex.LastWeight), formatNumber(ex.PBWeight),
			ex.Progress, ex.LastDate,
		))
	}
	return strings.Join(lines, "\n")
}

// formatNumber prints weights the way the dashboard shows them: no trailing
// zeros, no forced decimals.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Relatório Evolution</title>
<style>
  body { font-family: 'Courier New', monospace; background: #0a0a0a; color: #e0e0e0; padding: 40px; margin: 0; }
  .header { text-align: center; border-bottom: 3px solid #00f0ff; padding-bottom: 20px; margin-bottom: 30px; }
  .header h1 { color: #00f0ff; font-size: 32px; margin: 0; letter-spacing: 4px; }
  .header p { color: #888; font-size: 12px; margin: 5px 0 0 0; }
  .section { margin-bottom: 30px; }
  .section-title { color: #00f0ff; font-size: 18px; border-bottom: 2px solid #333; padding-bottom: 10px; margin-bottom: 15px; text-transform: uppercase; letter-spacing: 2px; }
  .profile-info { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; background: #1a1a1a; padding: 20px; border: 1px solid #333; }
  table { width: 100%; border-collapse: collapse; background: #1a1a1a; border: 1px solid #333; }
  th { background: #00f0ff; color: #000; padding: 12px; text-align: left; font-size: 11px; text-transform: uppercase; }
  td { padding: 10px 12px; border-bottom: 1px solid #333; font-size: 12px; }
  .goal-card { background: #1a1a1a; border: 1px solid #333; padding: 15px; margin-bottom: 10px; }
  .goal-card h4 { color: #00f0ff; margin: 0 0 10px 0; font-size: 14px; }
  .footer { text-align: center; margin-top: 40px; padding-top: 20px; border-top: 2px solid #333; color: #555; font-size: 10px; }
</style>
</head>
<body>
<div class="header"><h1>⚡ EVOLUTION</h1><p>Dashboard de Performance - Relatório Gerado em {{.GeneratedAt}}</p></div>
<div class="section">
  <div class="section-title">Perfil do Atleta</div>
  <div class="profile-info">
    <div>Nome: {{.Profile.Name}}</div>
    <div>Peso: {{.ProfileWeight}} kg</div>
    <div>Nível: {{.Profile.Level}}</div>
    <div>Período: {{.TimeframeLabel}}</div>
  </div>
</div>
<div class="section">
  <div class="section-title">Exercícios</div>
  <table>
    <thead><tr><th>Exercício</th><th>Última Carga</th><th>Data</th><th>Recorde Pessoal</th><th>Data RP</th><th>Volume Médio</th><th>Progresso</th></tr></thead>
    <tbody>
    {{range .Exercises}}<tr><td>{{.Name}}</td><td>{{.LastWeight}} kg</td><td>{{.LastDate}}</td><td>{{.PBWeight}} kg</td><td>{{.PBDate}}</td><td>{{.AvgVolume}} kg</td><td>{{.Progress}}%</td></tr>
    {{end}}</tbody>
  </table>
</div>
{{if .Goals}}<div class="section">
  <div class="section-title">Metas e Objetivos</div>
  {{range .Goals}}<div class="goal-card"><h4>{{.Title}}</h4><p>{{.Description}}</p></div>
  {{end}}</div>
{{end}}<div class="footer"><p>Relatório gerado automaticamente pelo sistema EVOLUTION</p><p>© {{.Year}} - Dashboard de Performance para Atletas</p></div>
</body>
</html>
`))

type reportRow struct {
	Name       string
	LastWeight string
	LastDate   string
	PBWeight   string
	PBDate     string
	AvgVolume  string
	Progress   int
}

// BuildDashboardReport renders the printable document for the current data.
func BuildDashboardReport(profile *domain.UserProfile, exercises []domain.Exercise, goals []domain.Goal, timeframe Timeframe, now time.Time) (string, error) {
	rows := make([]reportRow, 0, len(exercises))
	for _, ex := range exercises {
		rows = append(rows, reportRow{
			Name:       ex.Name,
			LastWeight: formatNumber(ex.LastWeight),
			LastDate:   ex.LastDate,
			PBWeight:   formatNumber(ex.PBWeight),
			PBDate:     ex.PBDate,
			AvgVolume:  formatNumber(ex.AvgVolume),
			Progress:   ex.Progress,
		})
	}

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, map[string]any{
		"Profile":        profile,
		"ProfileWeight":  formatNumber(profile.Weight),
		"Exercises":      rows,
		"Goals":          goals,
		"TimeframeLabel": timeframe.Label(),
		"GeneratedAt":    now.Format("02/01/2006"),
		"Year":           now.Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
