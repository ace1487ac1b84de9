package cli

import (
	"fmt"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/manifoldco/promptui"
)

const skipItem = "(none)"

// Picker chooses records interactively.
type Picker interface {
	PickJob(jobs []domain.Job) (*domain.Job, error)
	PickCandidate(candidates []domain.Candidate) (*domain.Candidate, error)
}

// PromptPicker asks on the terminal with promptui.
type PromptPicker struct{}

func (PromptPicker) PickJob(jobs []domain.Job) (*domain.Job, error) {
	items := make([]string, 0, len(jobs)+1)
	for _, j := range jobs {
		items = append(items, fmt.Sprintf("%s %s", j.ID, j.Title))
	}
	i, err := selectItem("Which job is this call about?", items)
	if err != nil || i < 0 {
		return nil, err
	}
	return &jobs[i], nil
}

func (PromptPicker) PickCandidate(candidates []domain.Candidate) (*domain.Candidate, error) {
	items := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		items = append(items, fmt.Sprintf("%s %s (%s)", c.ID, c.Name, c.Phone))
	}
	i, err := selectItem("Who are you calling?", items)
	if err != nil || i < 0 {
		return nil, err
	}
	return &candidates[i], nil
}

// selectItem returns the chosen index, or -1 for the skip entry.
func selectItem(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: append(items, skipItem),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return -1, err
	}
	if i == len(items) {
		return -1, nil
	}
	return i, nil
}
