// Package record assembles training examples: a user prompt, the assistant
// answer, their labels and a content-derived identifier.
package record

import (
	"crypto/sha1"
	"encoding/hex"
)

// IDLength is the number of hex characters kept from the digest.
const IDLength = 12

// Task labels what the prompt asks for.
type Task string

const (
	TaskTransform Task = "transform"
	TaskExtract   Task = "extract"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one JSONL line. Records are built once and never modified.
type Record struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Task        Task      `json:"task"`
	Seed        string    `json:"seed"`
	Messages    []Message `json:"messages"`
}

// ID derives the identifier from the prompt and answer joined by a blank line.
func ID(prompt, answer string) string {
	sum := sha1.Sum([]byte(prompt + "\n\n" + answer))
	return hex.EncodeToString(sum[:])[:IDLength]
}

// New assembles a record; seedTag names the pack the record came from.
func New(category, subcategory string, task Task, seedTag, prompt, answer string) Record {
	return Record{
		ID:          ID(prompt, answer),
		Category:    category,
		Subcategory: subcategory,
		Task:        task,
		Seed:        seedTag,
		Messages: []Message{
			{Role: RoleUser, Content: prompt},
			{Role: RoleAssistant, Content: answer},
		},
	}
}

// Prompt returns the content of the first user message.
func (r Record) Prompt() string {
	for _, m := range r.Messages {
		if m.Role == RoleUser {
			return m.Content
		}
	}

	return ""
}

// Answer returns the content of the last message when it is the assistant's.
func (r Record) Answer() (string, bool) {
	if len(r.Messages) == 0 {
		return "", false
	}

	last := r.Messages[len(r.Messages)-1]
	if last.Role != RoleAssistant {
		return "", false
	}

	return last.Content, true
}
