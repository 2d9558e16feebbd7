package categoryassign

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"categoryassign/internal/form"
	"categoryassign/internal/logging"
	"categoryassign/internal/registry"
)

// OnContentPrepareForm customizes the article and transition editors. It
// always returns true.
func (p *Plugin) OnContentPrepareForm(ctx context.Context, formOrEvent any, data ...any) bool {
	call := NormalizeFormArgs(formOrEvent, data...)
	logger := logging.WithContext(ctx, p.logger)
	if call.Form == nil {
		p.metrics.form(formLabelOther, OutcomeNoForm)
		logger.Debug("prepare form called without a form", logging.String("convention", call.Convention))
		return true
	}

	logger = logger.With(logging.String(logging.FieldForm, call.Form.Name()))
	switch call.Form.Name() {
	case form.ArticleContext:
		p.prepareArticleForm(logger, call)
	case form.TransitionContext:
		p.prepareTransitionForm(logger, call.Form)
	default:
		p.metrics.form(formLabelOther, OutcomeIgnored)
	}
	return true
}

func (p *Plugin) prepareArticleForm(logger *slog.Logger, call FormCall) {
	if !p.Enabled(ArticleContext) {
		p.metrics.form(formLabelArticle, OutcomeDisabled)
		logger.Debug("article form left editable", logging.String(logging.FieldDecisionReason, "workflow automation disabled"))
		return
	}
	field := call.Form.Field(categoryField)
	if field == nil {
		p.metrics.form(formLabelArticle, OutcomeNoField)
		logger.Debug("article form has no category field")
		return
	}
	field.Readonly = true
	field.Disabled = true

	if !registry.Empty(call.Data.Get(categoryField)) {
		p.metrics.form(formLabelArticle, OutcomeLocked)
		logger.Debug("category field locked")
		return
	}
	fallback := p.FallbackCategoryID()
	call.Form.SetValue(categoryField, "", fallback)
	p.metrics.form(formLabelArticle, OutcomeDefaulted)
	logger.Debug("category field locked with fallback category",
		logging.Int64(logging.FieldCategoryID, fallback),
	)
}

func (p *Plugin) prepareTransitionForm(logger *slog.Logger, f *form.Form) {
	if p.formsDir == "" {
		p.metrics.form(formLabelTransition, OutcomeFragmentMissing)
		return
	}
	path := filepath.Join(p.formsDir, FragmentFile)
	if err := f.LoadFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.metrics.form(formLabelTransition, OutcomeFragmentMissing)
			logger.Debug("transition form fragment not installed", logging.String("path", path))
			return
		}
		p.metrics.form(formLabelTransition, OutcomeFragmentInvalid)
		logging.WarnWithContext(logger, "transition form fragment ignored", "fragment_invalid",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "reinstall with 'categoryassign forms install --force'"),
			logging.String(logging.FieldImpact, "transition editor has no category picker"),
		)
		return
	}
	p.metrics.form(formLabelTransition, OutcomeExtended)
	logger.Debug("transition form extended", logging.String("path", path))
}
