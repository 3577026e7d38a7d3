package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations loads the embedded English and Japanese messages plus any
// active.*.toml file found in localesDir. An empty localesDir skips the
// lookup on disk.
func NewTranslations(defaultLang, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if _, err := language.Parse(defaultLang); err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(enMessages), "active.en.toml")
	bundle.MustParseMessageFileBytes([]byte(jaMessages), "active.ja.toml")

	if localesDir != "" {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}

		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	return &Translations{
		bundle:   bundle,
		localize: i18n.NewLocalizer(bundle, defaultLang),
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var enMessages = `
[app_usage]
other = "Post a section of the merged pull request description to the issue tracker"

[compile_usage]
other = "Extract the configured section of the PR referenced by COMMIT_MESSAGE"

[env_usage]
other = "Print the GitHub Actions environment variables"

[debug_flag_usage]
other = "Enable debug logging"

[lang_flag_usage]
other = "Language of the log messages (en, ja)"

[commit_first_line]
other = "Commit message first line"

[pr_number_parsed]
other = "Parsed pull request number"

[pr_number_not_found]
other = "No pull request number in the first line of the commit message, nothing to do"

[fetching_pr]
other = "Fetching pull request #{{.Number}}"

[section_not_found]
other = "The pull request description has no matching section, nothing to do"

[section_printed]
other = "Issue tracker not configured, section written to stdout"

[comment_posted]
other = "Section posted as a comment"

[comment_failed]
other = "Could not post the section to the issue tracker"

[run_finished]
other = "Run finished"

[run_failed]
other = "Run failed"

[factory_already_registered]
other = "Command {{.FactoryName}} is already registered"
`

var jaMessages = `
[app_usage]
other = "マージされたプルリクエストの説明の一部を課題管理にコメントする"

[compile_usage]
other = "COMMIT_MESSAGE が参照する PR から指定セクションを抽出する"

[env_usage]
other = "GitHub Actions の環境変数を表示する"

[debug_flag_usage]
other = "デバッグログを有効にする"

[lang_flag_usage]
other = "ログメッセージの言語 (en, ja)"

[commit_first_line]
other = "コミットメッセージの1行目"

[pr_number_parsed]
other = "プルリクエスト番号を取得しました"

[pr_number_not_found]
other = "コミットメッセージの1行目に PR 番号がないため終了します"

[fetching_pr]
other = "プルリクエスト #{{.Number}} を取得しています"

[section_not_found]
other = "PR の説明に対象セクションがないため終了します"

[section_printed]
other = "課題管理が未設定のため、セクションを標準出力に書き出しました"

[comment_posted]
other = "セクションをコメントしました"

[comment_failed]
other = "課題管理へのコメントに失敗しました"

[run_finished]
other = "処理が完了しました"

[run_failed]
other = "処理に失敗しました"

[factory_already_registered]
other = "コマンド {{.FactoryName}} は登録済みです"
`
