// ABOUTME: Processor parses structured course documents into courses and lessons
// ABOUTME: Splits lesson text into overlapping sentence-aware chunks for embedding
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lectern/lectern/internal/models"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters
	DefaultChunkSize = 800
	// DefaultChunkOverlap is the minimum overlap between consecutive chunks
	DefaultChunkOverlap = 100
)

var (
	lessonMarker = regexp.MustCompile(`(?i)^lesson\s+(\d+):\s*(.*)$`)
	sentenceEnd  = regexp.MustCompile(`[.!?]["')\]]*\s+`)
)

// Processor parses course documents and splits lesson text into
// retrieval-sized chunks
type Processor struct {
	chunkSize    int
	chunkOverlap int
}

// NewProcessor creates a Processor with the given chunking bounds.
// Non-positive size or an overlap that does not fit fall back to defaults.
func NewProcessor(chunkSize, chunkOverlap int) *Processor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &Processor{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// parsedLesson carries a lesson and its raw body lines during parsing
type parsedLesson struct {
	lesson models.Lesson
	body   []string
}

// ParseFile reads and parses a course document from disk
func (p *Processor) ParseFile(path string) (*models.Course, []models.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}
	course, chunks, err := p.Parse(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return course, chunks, nil
}

// Parse parses a course document. The document starts with header lines
// (Course Title, Course Link, Course Instructor; only the title is
// required), followed by "Lesson N:" sections. A "Lesson Link:" line
// directly after a lesson marker attaches a link to that lesson.
func (p *Processor) Parse(content string) (*models.Course, []models.Chunk, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var title, link, instructor string
	var preamble []string
	var lessons []*parsedLesson
	var current *parsedLesson

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := lessonMarker.FindStringSubmatch(line); m != nil {
			number, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, nil, fmt.Errorf("bad lesson number in %q: %w", line, err)
			}
			current = &parsedLesson{lesson: models.Lesson{
				Number: number,
				Title:  strings.TrimSpace(m[2]),
			}}
			lessons = append(lessons, current)

			// A link line directly after the marker belongs to the lesson
			for j := i + 1; j < len(lines); j++ {
				next := strings.TrimSpace(lines[j])
				if next == "" {
					continue
				}
				if value, ok := headerValue(next, "Lesson Link:"); ok {
					current.lesson.Link = value
					i = j
				}
				break
			}
			continue
		}

		if line == "" {
			continue
		}

		if current != nil {
			current.body = append(current.body, line)
			continue
		}

		// Header phase, before the first lesson marker
		if value, ok := headerValue(line, "Course Title:"); ok {
			title = value
		} else if value, ok := headerValue(line, "Course Link:"); ok {
			link = value
		} else if value, ok := headerValue(line, "Course Instructor:"); ok {
			instructor = value
		} else {
			preamble = append(preamble, line)
		}
	}

	if strings.TrimSpace(title) == "" {
		return nil, nil, errors.New("document has no course title")
	}

	course, err := models.NewCourse(title, instructor, link)
	if err != nil {
		return nil, nil, err
	}

	// Preamble text becomes lesson 0 only when no explicit lesson 0 exists
	if len(preamble) > 0 && !hasLessonZero(lessons) {
		intro := &parsedLesson{
			lesson: models.Lesson{Number: 0, Title: "Introduction"},
			body:   preamble,
		}
		lessons = append([]*parsedLesson{intro}, lessons...)
	}

	var chunks []models.Chunk
	seq := 0
	for _, pl := range lessons {
		course.Lessons = append(course.Lessons, pl.lesson)
		for _, part := range p.chunkSentences(splitSentences(strings.Join(pl.body, "\n"))) {
			chunks = append(chunks, models.Chunk{
				CourseID:     course.ID,
				Seq:          seq,
				LessonNumber: pl.lesson.Number,
				Content:      part,
			})
			seq++
		}
	}

	return course, chunks, nil
}

// chunkSentences packs sentences into chunks of at most chunkSize
// characters. Consecutive chunks overlap by at least chunkOverlap
// characters of trailing whole sentences; a single sentence longer than
// chunkSize becomes its own chunk.
func (p *Processor) chunkSentences(sentences []string) []string {
	var chunks []string
	i := 0
	for i < len(sentences) {
		var taken []string
		size := 0
		j := i
		for j < len(sentences) {
			add := len(sentences[j])
			if len(taken) > 0 {
				add++ // joining space
			}
			if size+add > p.chunkSize && len(taken) > 0 {
				break
			}
			taken = append(taken, sentences[j])
			size += add
			j++
		}
		chunks = append(chunks, strings.Join(taken, " "))
		if j >= len(sentences) {
			break
		}

		next := j
		if p.chunkOverlap > 0 {
			overlap := 0
			for next > i && overlap < p.chunkOverlap {
				next--
				overlap += len(sentences[next])
			}
		}
		if next <= i {
			next = i + 1 // overlap must not stall progress
		}
		i = next
	}
	return chunks
}

// splitSentences splits text on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the sentence
func splitSentences(text string) []string {
	var sentences []string
	rest := strings.TrimSpace(text)
	for rest != "" {
		loc := sentenceEnd.FindStringIndex(rest)
		if loc == nil {
			sentences = append(sentences, rest)
			break
		}
		if s := strings.TrimSpace(rest[:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		rest = rest[loc[1]:]
	}
	return sentences
}

// headerValue matches a "Key: value" line case-insensitively on the key
func headerValue(line, key string) (string, bool) {
	if len(line) < len(key) || !strings.EqualFold(line[:len(key)], key) {
		return "", false
	}
	return strings.TrimSpace(line[len(key):]), true
}

func hasLessonZero(lessons []*parsedLesson) bool {
	for _, pl := range lessons {
		if pl.lesson.Number == 0 {
			return true
		}
	}
	return false
}
