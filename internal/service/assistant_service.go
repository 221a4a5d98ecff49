package service

import (
	"context"
	"fmt"

	appErrors "terra/internal/errors"
)

// terraSystemPrompt grounds the assistant in the property. Kept verbatim
// from the site copy; the assistant has no access to the booking flow.
const terraSystemPrompt = `
あなたは愛媛県今治市伯方島にある簡易宿所「Terra（テラ）」のAIアシスタントです。

【Terraのコンセプト】
- 「暮らすように泊まる」静かな大人の隠れ家。
- 住所：愛媛県今治市伯方町北浦甲1501−3
- 近くの店：山中商店（徒歩圏内・食材あり）、コンビニ（車5分）、道の駅マリンオアシスはかた（車10分）

【回答のためのカンペ】
1. 買い物・食事:
   - 基本は自炊推奨だが、「山中商店」で手作りのお弁当や朝食の注文が可能（要予約・別料金）。
   - 外食ならランチで「さんわ（ラーメン）」「お好み焼き」などを提案。
2. 観光・リフレッシュ:
   - 「開山公園（桜・展望）」「船折瀬戸（潮流）」など自然スポットを推す。
3. レシピ提案:
   - 山中商店で買える食材を使った、フライパン一つでできる男飯や、疲れた体に優しいスープなどを提案。

【トーン＆マナー】
- 落ち着いていて、少し詩的で丁寧なトーン。
`

// TextGenerator is the upstream text-generation call.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)
}

type AssistantService struct {
	generator TextGenerator
}

func NewAssistantService(generator TextGenerator) *AssistantService {
	return &AssistantService{generator: generator}
}

// Ask forwards a free-text question together with the fixed property
// prompt. Stateless; shares nothing with the reservation flow.
func (s *AssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", appErrors.NewValidationError("質問を入力してください。")
	}
	text, err := s.generator.Generate(ctx, terraSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	return text, nil
}
