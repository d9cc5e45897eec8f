package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/cenjin-cards/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeCardsImportable(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	cards := fakeCards(gofakeit.New(42), 20, now)
	require.Len(t, cards, 20)

	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, cards, loc))

	back, err := sheet.Reader{Location: loc}.Read(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(cards))
	for i, card := range cards {
		assert.True(t, card.Status.IsValid())
		assert.True(t, card.ImportPrice.LessThan(card.Price))
		assert.False(t, card.OrderTime.After(now))
		assert.Equal(t, card.CardNumber, back[i].CardNumber)
		assert.True(t, card.Price.Equal(back[i].Price))
		assert.True(t, card.OrderTime.Equal(back[i].OrderTime))
	}
}
