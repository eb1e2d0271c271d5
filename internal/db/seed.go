package db

import (
	"context"
	"database/sql"
	"fmt"
)

type seedQuestion struct {
	id         int64
	prefecture string
	capital    string
}

// All 47 prefecture/capital pairs. IDs are stable so answer history keeps
// pointing at the same question across restarts.
var prefectures = []seedQuestion{
	{1, "北海道", "札幌市"},
	{2, "青森県", "青森市"},
	{3, "岩手県", "盛岡市"},
	{4, "宮城県", "仙台市"},
	{5, "秋田県", "秋田市"},
	{6, "山形県", "山形市"},
	{7, "福島県", "福島市"},
	{8, "茨城県", "水戸市"},
	{9, "栃木県", "宇都宮市"},
	{10, "群馬県", "前橋市"},
	{11, "埼玉県", "さいたま市"},
	{12, "千葉県", "千葉市"},
	{13, "東京都", "新宿区"},
	{14, "神奈川県", "横浜市"},
	{15, "新潟県", "新潟市"},
	{16, "富山県", "富山市"},
	{17, "石川県", "金沢市"},
	{18, "福井県", "福井市"},
	{19, "山梨県", "甲府市"},
	{20, "長野県", "長野市"},
	{21, "岐阜県", "岐阜市"},
	{22, "静岡県", "静岡市"},
	{23, "愛知県", "名古屋市"},
	{24, "三重県", "津市"},
	{25, "滋賀県", "大津市"},
	{26, "京都府", "京都市"},
	{27, "大阪府", "大阪市"},
	{28, "兵庫県", "神戸市"},
	{29, "奈良県", "奈良市"},
	{30, "和歌山県", "和歌山市"},
	{31, "鳥取県", "鳥取市"},
	{32, "島根県", "松江市"},
	{33, "岡山県", "岡山市"},
	{34, "広島県", "広島市"},
	{35, "山口県", "山口市"},
	{36, "徳島県", "徳島市"},
	{37, "香川県", "高松市"},
	{38, "愛媛県", "松山市"},
	{39, "高知県", "高知市"},
	{40, "福岡県", "福岡市"},
	{41, "佐賀県", "佐賀市"},
	{42, "長崎県", "長崎市"},
	{43, "熊本県", "熊本市"},
	{44, "大分県", "大分市"},
	{45, "宮崎県", "宮崎市"},
	{46, "鹿児島県", "鹿児島市"},
	{47, "沖縄県", "那覇市"},
}

// SeedQuestions installs the reference corpus if the questions table is empty.
// Existing rows are never touched; the quiz core only reads questions.
func SeedQuestions(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	defer tx.Rollback()

	for _, q := range prefectures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (question_id, prefecture, correct_answer) VALUES ($1,$2,$3)`,
			q.id, q.prefecture, q.capital); err != nil {
			return fmt.Errorf("seed question %d: %w", q.id, err)
		}
	}
	return tx.Commit()
}
