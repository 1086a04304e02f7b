package todo

// CalculateProgress is the mean ProgressPercent of todos, truncated toward
// zero. No todos means no progress.
func CalculateProgress(todos []Todo) int {
	if len(todos) == 0 {
		return 0
	}

	sum := 0
	for _, t := range todos {
		sum += t.ProgressPercent
	}
	return sum / len(todos)
}
