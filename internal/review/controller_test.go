package review

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-enhancer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuggestions() []types.Suggestion {
	return []types.Suggestion{
		{ID: "skill_git", Section: types.SectionSkill, Kind: types.KindAddNew, SuggestedText: "Git", Weight: 5},
		{ID: "cert", Section: types.SectionCertification, Kind: types.KindAddNew, SuggestedText: "Oracle Certified Associate", Weight: 6},
		{ID: "project", Section: types.SectionProject, Kind: types.KindModifyExisting, OriginalText: "Old project", SuggestedText: "New project", Weight: 3},
		{ID: "skills_toggle", Section: types.SectionSkill, Kind: types.KindAddNew, Weight: 5, Options: []types.SkillOption{
			{Name: "Docker"}, {Name: "AWS"}, {Name: "Kubernetes"},
		}},
	}
}

func newTestController(base int) *Controller {
	return NewController(NewStore(testSuggestions()), base)
}

func stateOf(t *testing.T, c *Controller, id string) types.State {
	t.Helper()
	sg, err := c.Store().Get(id)
	require.NoError(t, err)
	return sg.State
}

func TestController_InitialState(t *testing.T) {
	c := newTestController(65)

	assert.Equal(t, 65, c.Score())
	for _, sg := range c.Store().All() {
		assert.Equal(t, types.StateOriginal, sg.State, sg.ID)
	}
}

func TestController_ScenarioA(t *testing.T) {
	c := newTestController(65)

	require.NoError(t, c.Accept("skill_git"))
	assert.Equal(t, 70, c.Score())

	require.NoError(t, c.Accept("cert"))
	assert.Equal(t, 76, c.Score())

	require.NoError(t, c.Undo("skill_git"))
	assert.Equal(t, 71, c.Score())
	assert.Equal(t, types.StateOriginal, stateOf(t, c, "skill_git"))
}

func TestController_ScenarioB_Capped(t *testing.T) {
	c := newTestController(98)

	require.NoError(t, c.Accept("cert"))
	assert.Equal(t, 100, c.Score())
}

func TestController_ScenarioC_SkillToggle(t *testing.T) {
	c := newTestController(80)

	for _, name := range []string{"Docker", "AWS", "Kubernetes"} {
		require.NoError(t, c.ToggleSkill("skills_toggle", name, true))
	}
	assert.Equal(t, 83, c.Score())

	require.NoError(t, c.ToggleSkill("skills_toggle", "AWS", false))
	assert.Equal(t, 82, c.Score())

	// accepting the umbrella adds nothing on top of the selected options
	require.NoError(t, c.Accept("skills_toggle"))
	assert.Equal(t, 82, c.Score())
}

func TestController_ToggleSkillErrors(t *testing.T) {
	c := newTestController(80)

	err := c.ToggleSkill("skill_git", "Git", true)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)

	err = c.ToggleSkill("skills_toggle", "Rust", true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 80, c.Score())
}

func TestController_AcceptUndoRoundTrip(t *testing.T) {
	for _, sg := range testSuggestions() {
		t.Run(sg.ID, func(t *testing.T) {
			c := newTestController(50)
			require.NoError(t, c.Accept("project"))
			before := c.Score()

			if sg.ID == "project" {
				require.NoError(t, c.Undo("project"))
				assert.Equal(t, 50, c.Score())
				return
			}

			require.NoError(t, c.Accept(sg.ID))
			require.NoError(t, c.Undo(sg.ID))
			assert.Equal(t, before, c.Score())
		})
	}
}

func TestController_EditCancelRoundTrip(t *testing.T) {
	starts := []struct {
		name  string
		setup func(c *Controller) error
		want  types.State
	}{
		{"from original", func(*Controller) error { return nil }, types.StateOriginal},
		{"from accepted", func(c *Controller) error { return c.Accept("cert") }, types.StateAccepted},
		{"from rejected", func(c *Controller) error { return c.Reject("cert") }, types.StateRejected},
	}

	for _, tt := range starts {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(60)
			require.NoError(t, c.Accept("skill_git"))
			require.NoError(t, tt.setup(c))
			scoreBefore := c.Score()
			textBefore, err := c.Store().Get("cert")
			require.NoError(t, err)

			require.NoError(t, c.Edit("cert"))
			assert.Equal(t, types.StateEditing, stateOf(t, c, "cert"))
			require.NoError(t, c.UpdateBuffer("cert", "Something else entirely"))

			require.NoError(t, c.CancelEdit("cert"))

			after, err := c.Store().Get("cert")
			require.NoError(t, err)
			assert.Equal(t, tt.want, after.State)
			assert.Equal(t, textBefore.SuggestedText, after.SuggestedText)
			assert.Equal(t, scoreBefore, c.Score())

			buf, err := c.Store().Buffer("cert")
			require.NoError(t, err)
			assert.Empty(t, buf)
		})
	}
}

func TestController_EditDoesNotApplyWeightUntilCommit(t *testing.T) {
	c := newTestController(60)

	require.NoError(t, c.Edit("cert"))
	assert.Equal(t, 60, c.Score())

	buf, err := c.Store().Buffer("cert")
	require.NoError(t, err)
	assert.Equal(t, "Oracle Certified Associate", buf)

	require.NoError(t, c.CommitEdit("cert", "Oracle Certified Professional"))
	assert.Equal(t, 66, c.Score())

	sg, err := c.Store().Get("cert")
	require.NoError(t, err)
	assert.Equal(t, types.StateAccepted, sg.State)
	assert.Equal(t, "Oracle Certified Professional", sg.SuggestedText)
}

func TestController_EditAcceptedKeepsScore(t *testing.T) {
	c := newTestController(60)

	require.NoError(t, c.Accept("cert"))
	assert.Equal(t, 66, c.Score())

	require.NoError(t, c.Edit("cert"))
	assert.Equal(t, 66, c.Score(), "an accepted suggestion keeps counting while edited")
	require.NoError(t, c.UpdateBuffer("cert", "Draft"))
	assert.Equal(t, 66, c.Score())

	require.NoError(t, c.CommitEdit("cert", "Edited"))
	assert.Equal(t, 66, c.Score(), "commit adds the weight once")

	require.NoError(t, c.Edit("cert"))
	require.NoError(t, c.CancelEdit("cert"))
	assert.Equal(t, 66, c.Score())
	assert.Equal(t, types.StateAccepted, stateOf(t, c, "cert"))
}

func TestController_EditNeverMovesScore(t *testing.T) {
	starts := map[string]func(c *Controller) error{
		"original": func(*Controller) error { return nil },
		"accepted": func(c *Controller) error { return c.Accept("project") },
		"rejected": func(c *Controller) error { return c.Reject("project") },
	}

	for name, setup := range starts {
		t.Run(name, func(t *testing.T) {
			c := newTestController(65)
			require.NoError(t, setup(c))
			before := c.Score()

			require.NoError(t, c.Edit("project"))
			assert.Equal(t, before, c.Score())
		})
	}
}

func TestNewStore_ClearsCatalogSelections(t *testing.T) {
	suggestions := testSuggestions()
	suggestions[3].Options[0].Selected = true

	c := NewController(NewStore(suggestions), 80)
	assert.Equal(t, 80, c.Score())

	sg, err := c.Store().Get("skills_toggle")
	require.NoError(t, err)
	assert.Empty(t, sg.SelectedOptions())
	assert.True(t, suggestions[3].Options[0].Selected, "input is not mutated")
}

func TestController_RejectFlows(t *testing.T) {
	c := newTestController(60)

	require.NoError(t, c.Accept("skill_git"))
	require.NoError(t, c.Reject("skill_git"))
	assert.Equal(t, 60, c.Score())
	assert.Equal(t, types.StateRejected, stateOf(t, c, "skill_git"))

	require.NoError(t, c.Accept("skill_git"))
	assert.Equal(t, 65, c.Score())

	require.NoError(t, c.Reject("skill_git"))
	require.NoError(t, c.Undo("skill_git"))
	assert.Equal(t, 60, c.Score())
	assert.Equal(t, types.StateOriginal, stateOf(t, c, "skill_git"))
}

func TestController_InvalidTransitionsAreNoops(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *Controller) error
		action func(c *Controller) error
		state  types.State
	}{
		{"accept twice", func(c *Controller) error { return c.Accept("cert") }, func(c *Controller) error { return c.Accept("cert") }, types.StateAccepted},
		{"reject twice", func(c *Controller) error { return c.Reject("cert") }, func(c *Controller) error { return c.Reject("cert") }, types.StateRejected},
		{"undo original", func(*Controller) error { return nil }, func(c *Controller) error { return c.Undo("cert") }, types.StateOriginal},
		{"commit without edit", func(*Controller) error { return nil }, func(c *Controller) error { return c.CommitEdit("cert", "x") }, types.StateOriginal},
		{"cancel without edit", func(c *Controller) error { return c.Accept("cert") }, func(c *Controller) error { return c.CancelEdit("cert") }, types.StateAccepted},
		{"edit while editing", func(c *Controller) error { return c.Edit("cert") }, func(c *Controller) error { return c.Edit("cert") }, types.StateEditing},
		{"accept while editing", func(c *Controller) error { return c.Edit("cert") }, func(c *Controller) error { return c.Accept("cert") }, types.StateEditing},
		{"undo while editing", func(c *Controller) error { return c.Edit("cert") }, func(c *Controller) error { return c.Undo("cert") }, types.StateEditing},
		{"buffer without edit", func(*Controller) error { return nil }, func(c *Controller) error { return c.UpdateBuffer("cert", "x") }, types.StateOriginal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(60)
			require.NoError(t, tt.setup(c))
			scoreBefore := c.Score()
			before, err := c.Store().Get("cert")
			require.NoError(t, err)

			err = tt.action(c)

			var te *TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "cert", te.ID)
			after, err := c.Store().Get("cert")
			require.NoError(t, err)
			assert.Equal(t, tt.state, after.State)
			assert.Equal(t, before, after)
			assert.Equal(t, scoreBefore, c.Score())
		})
	}
}

func TestController_UnknownID(t *testing.T) {
	c := newTestController(60)

	actions := map[string]func() error{
		"accept": func() error { return c.Accept("nope") },
		"reject": func() error { return c.Reject("nope") },
		"edit":   func() error { return c.Edit("nope") },
		"commit": func() error { return c.CommitEdit("nope", "x") },
		"cancel": func() error { return c.CancelEdit("nope") },
		"undo":   func() error { return c.Undo("nope") },
		"toggle": func() error { return c.ToggleSkill("nope", "Go", true) },
	}

	for name, action := range actions {
		t.Run(name, func(t *testing.T) {
			err := action()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, "nope", nf.ID)
		})
	}
	assert.Equal(t, 60, c.Score())
}

func TestController_AddSuggestion(t *testing.T) {
	c := newTestController(60)

	id := c.AddSuggestion(types.Suggestion{
		Section:       types.SectionCertification,
		Kind:          types.KindModifyExisting,
		OriginalText:  "ignored",
		SuggestedText: "AWS Cloud Practitioner",
	})

	require.NotEmpty(t, id)
	sg, err := c.Store().Get(id)
	require.NoError(t, err)
	assert.Equal(t, types.KindAddNew, sg.Kind)
	assert.Empty(t, sg.OriginalText)
	assert.Equal(t, 6, sg.Weight)
	assert.Equal(t, types.StateOriginal, sg.State)
	assert.Equal(t, 60, c.Score())

	require.NoError(t, c.Accept(id))
	assert.Equal(t, 66, c.Score())
	assert.Equal(t, 5, c.Store().Len())
}
