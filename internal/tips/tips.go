// Package tips rotates short usage hints for the dashboard.
package tips

import (
	"slices"
	"time"
)

var pool = []string{
	"`tally task add \"idea\"` to capture something before it slips away.",
	"`tally task add \"fix leak\" -i 40 -c 2` to score a task as you capture it.",
	"`tally points 30 2` to see what a score is worth before you commit to it.",
	"`tally task next 3` for the three things to do right now.",
	"`tally task plan <id> tomorrow` to push a task to tomorrow's list.",
	"`tally task due <id> +3d` to set a deadline three days out.",
	"`tally task due <id> none` to drop a deadline.",
	"`tally task add \"step\" --parent <id>` to break a task into subtasks.",
	"`tally task --flat` to rank subtasks alongside everything else.",
	"`tally task --done` to look back at what you've finished.",
	"`tally task undo <id>` to reopen something you closed too early.",
	"`tally export -o tasks.json` to back up your list.",
	"`cat tasks.json | tally classify --sort` to rank tasks from another tool.",
	"`tally config set tasks.default_importance 10` to skip the inbox for new tasks.",
	"`tally config set display.color never` for plain output.",
	"Due dates only count once they're tomorrow or sooner; plan a day to see a task earlier.",
	"Important and simple beats important and hard: points are 10 × importance ÷ complexity.",
	"IDs can be shortened to any unique prefix.",
}

// All returns a copy of the tip pool.
func All() []string {
	return slices.Clone(pool)
}

// Daily returns the tip for t's day. It is stable within a day.
func Daily(t time.Time) string {
	return pool[t.YearDay()%len(pool)]
}
