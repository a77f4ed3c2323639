package fsvparser

import "fjacquet/fsv-csv/internal/models"

// Hierarchy tracks the header context while a report is walked top to bottom.
// It starts empty and has no terminal state.
type Hierarchy struct {
	ctx models.HierarchyContext
}

// EnterLevel1 applies a Level 1 header line and clears all lower levels.
func (h *Hierarchy) EnterLevel1(line string) {
	h.ctx = models.HierarchyContext{Level1: headerLabel(line)}
}

// EnterLevel2 applies a Level 2 header line and clears Level 3. Level 1 is kept.
func (h *Hierarchy) EnterLevel2(line string) {
	h.ctx.Level2 = headerLabel(line)
	h.ctx.Level3Code = ""
	h.ctx.Level3Desc = ""
}

// EnterLevel3 applies a Level 3 header line: its first token becomes the code
// and the remainder the description.
func (h *Hierarchy) EnterLevel3(line string) {
	h.ctx.Level3Code, h.ctx.Level3Desc = splitFirstField(line)
}

// Snapshot returns a copy of the current context.
func (h *Hierarchy) Snapshot() models.HierarchyContext {
	return h.ctx
}

// headerLabel drops the numeric prefix of a header line. A header with no
// trailing text keeps the whole line as its label.
func headerLabel(line string) string {
	_, rest := splitFirstField(line)
	if rest == "" {
		return line
	}
	return rest
}
