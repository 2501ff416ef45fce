package bank

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"interviewsim/internal/errors"
	"interviewsim/internal/models"
)

// loadFile reads a question file. The extension selects the format:
// .csv with a Category,Question,Answer header, or .yaml/.yml with a list of
// {category, question, answer} entries.
func loadFile(path string) ([]models.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(ErrDataUnavailable, "open question file", slog.String("path", path))
	}
	defer func() {
		_ = f.Close()
	}()

	var questions []models.Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		questions, err = parseYAML(f)
	default:
		questions, err = parseCSV(f)
	}
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, errors.Wrap(ErrDataUnavailable, "question file has no rows", slog.String("path", path))
	}
	return questions, nil
}

func parseCSV(r io.Reader) ([]models.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(ErrDataUnavailable, "read csv header")
	}

	categoryIdx, questionIdx, answerIdx := -1, -1, -1
	for i, column := range header {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "category":
			categoryIdx = i
		case "question":
			questionIdx = i
		case "answer":
			answerIdx = i
		}
	}
	if categoryIdx < 0 || questionIdx < 0 || answerIdx < 0 {
		return nil, errors.Wrap(ErrDataUnavailable, "csv header missing Category, Question or Answer")
	}

	var questions []models.Question
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrDataUnavailable, "read csv record")
		}
		if len(record) <= categoryIdx || len(record) <= questionIdx || len(record) <= answerIdx {
			continue
		}
		questions = append(questions, models.Question{
			Category:        strings.TrimSpace(record[categoryIdx]),
			Prompt:          strings.TrimSpace(record[questionIdx]),
			ReferenceAnswer: strings.TrimSpace(record[answerIdx]),
		})
	}
	return questions, nil
}

type yamlQuestion struct {
	Category string `yaml:"category"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

func parseYAML(r io.Reader) ([]models.Question, error) {
	var rows []yamlQuestion
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(ErrDataUnavailable, "decode yaml questions")
	}
	questions := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, models.Question{
			Category:        strings.TrimSpace(row.Category),
			Prompt:          strings.TrimSpace(row.Question),
			ReferenceAnswer: strings.TrimSpace(row.Answer),
		})
	}
	return questions, nil
}
