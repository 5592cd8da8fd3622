// Package export serializes an aggregated profile into a self-contained CV
// document. Turning the document into a PDF or raster page is left to
// whatever consumes the returned HTML.
package export

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

// cvData is the flattened view the template renders.
type cvData struct {
	Name          string
	Login         string
	Role          string
	Bio           string
	AvatarURL     string
	Company       string
	Location      string
	Blog          string
	Twitter       string
	GitHubURL     string
	Repositories  int
	Followers     int
	Contributions int
	Languages     []domain.LanguageStat
}

var cvTemplate = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>CV - {{.Name}}</title>
</head>
<body>
  <div class="cv-container">
    <div class="cv-header">
      {{if .AvatarURL}}<img src="{{.AvatarURL}}" alt="{{.Name}}" class="cv-avatar">{{end}}
      <h1 class="cv-name">{{.Name}}</h1>
      <h2 class="cv-role">{{.Role}}</h2>
      {{if .Bio}}<p class="cv-bio">{{.Bio}}</p>{{end}}
    </div>
    <div class="cv-content">
      <div class="cv-section">
        <h3 class="cv-section-title">Contact</h3>
        <div class="cv-info-grid">
          {{if .Location}}<div class="cv-info-item"><span class="cv-info-label">Location:</span> {{.Location}}</div>{{end}}
          {{if .Company}}<div class="cv-info-item"><span class="cv-info-label">Company:</span> {{.Company}}</div>{{end}}
          {{if .GitHubURL}}<div class="cv-info-item"><span class="cv-info-label">GitHub:</span> <a href="{{.GitHubURL}}">{{.GitHubURL}}</a></div>{{end}}
          {{if .Blog}}<div class="cv-info-item"><span class="cv-info-label">Website:</span> <a href="{{.Blog}}">{{.Blog}}</a></div>{{end}}
          {{if .Twitter}}<div class="cv-info-item"><span class="cv-info-label">Twitter:</span> @{{.Twitter}}</div>{{end}}
        </div>
      </div>
      <div class="cv-section">
        <h3 class="cv-section-title">GitHub Statistics</h3>
        <div class="cv-stats-grid">
          <div class="cv-stat-card"><div class="cv-stat-number">{{.Repositories}}</div><div class="cv-stat-label">Repositories</div></div>
          <div class="cv-stat-card"><div class="cv-stat-number">{{.Followers}}</div><div class="cv-stat-label">Followers</div></div>
          <div class="cv-stat-card"><div class="cv-stat-number">{{.Contributions}}</div><div class="cv-stat-label">Contributions</div></div>
        </div>
      </div>
      {{if .Languages}}
      <div class="cv-section">
        <h3 class="cv-section-title">Top Languages</h3>
        <div class="cv-tech-list">
          {{range .Languages}}<div class="cv-tech-item">{{.Language}}<span class="cv-tech-percentage">{{.Percentage}}%</span></div>
          {{end}}
        </div>
      </div>
      {{end}}
    </div>
  </div>
</body>
</html>
`))

// BuildCV renders the profile as a standalone HTML document.
func BuildCV(profile *domain.AggregatedProfile) (string, error) {
	data := cvData{
		Name:          profile.Detail.Name,
		Login:         profile.Contributor.Login,
		Role:          "Software developer",
		Bio:           profile.Detail.Bio,
		AvatarURL:     profile.Contributor.AvatarURL,
		Company:       profile.Detail.Company,
		Location:      profile.Detail.Location,
		Blog:          profile.Detail.Blog,
		Twitter:       profile.Detail.TwitterUsername,
		GitHubURL:     profile.Contributor.HTMLURL,
		Repositories:  profile.Detail.PublicRepos,
		Followers:     profile.Detail.Followers,
		Contributions: profile.Contributor.ContributionsToRepo,
		Languages:     profile.Languages,
	}
	if data.Name == "" {
		data.Name = profile.Contributor.Login
	}
	if data.Repositories == 0 {
		data.Repositories = len(profile.Repositories)
	}

	var sb strings.Builder
	if err := cvTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render CV document: %w", err)
	}
	return sb.String(), nil
}
