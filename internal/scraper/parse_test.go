package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `
<div role="feed">
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://maps.example/place/alpha"></a>
    <div class="qBF1Pd">Alpha General Hospital</div>
    <span class="MW4etd">4.5</span>
    <div class="W4Efsd"><span>General hospital</span><span>· Acibadem St. 12</span></div>
  </div>
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://maps.example/place/beta"></a>
    <div class="qBF1Pd">Beta Clinic</div>
    <div class="W4Efsd"><span>General hospital Harbor Road 3</span></div>
  </div>
  <div class="Nv2PK">
    <a class="hfpxzc" href="https://maps.example/place/gamma"></a>
    <div class="qBF1Pd">Gamma Medical Park</div>
    <span class="MW4etd">3,8</span>
  </div>
</div>`

func reviewBlock(id, author, stars, text, date string) string {
	b := `<div class="jJc9Ad" data-review-id="` + id + `">`
	if author != "" {
		b += `<div class="d4r55">` + author + `</div>`
	}
	if stars != "" {
		b += `<span aria-label="` + stars + `"></span>`
	}
	if text != "" {
		b += `<span class="wiI7pd">` + text + `</span>`
	}
	if date != "" {
		b += `<span class="rsqaWe">` + date + `</span>`
	}
	return b + `</div>`
}

func reviewsFixture() string {
	return `<div role="main">` +
		reviewBlock("r1", "Reviewer One", "5 stars", "Great care and staff", "2 months ago") +
		reviewBlock("r2", "Reviewer Two", "4 stars", "Clean rooms", "a year ago") +
		reviewBlock("r3", "Reviewer Three", "1 star", "Long waiting times", "3 weeks ago") +
		reviewBlock("r4", "Reviewer Four", "3 stars", "Average experience", "5 days ago") +
		reviewBlock("r5", "Reviewer Five", "2 stars", "Hard to park", "a month ago") +
		`</div>`
}

func TestParseResultCards_CapsAndPreservesOrder(t *testing.T) {
	cards, err := parseResultCards(feedFixture, 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Alpha General Hospital", cards[0].Name)
	assert.Equal(t, "Beta Clinic", cards[1].Name)
	assert.Equal(t, "https://maps.example/place/alpha", cards[0].Href)
}

func TestParseResultCards_Fields(t *testing.T) {
	cards, err := parseResultCards(feedFixture, 10)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	require.NotNil(t, cards[0].Rating)
	assert.InDelta(t, 4.5, *cards[0].Rating, 0.001)
	require.NotNil(t, cards[0].Address)
	assert.Equal(t, "Acibadem St. 12", *cards[0].Address, "separator dot is stripped")

	assert.Nil(t, cards[1].Rating)
	require.NotNil(t, cards[1].Address)
	assert.Equal(t, "Harbor Road 3", *cards[1].Address, "listing-type prefix is stripped")

	require.NotNil(t, cards[2].Rating)
	assert.InDelta(t, 3.8, *cards[2].Rating, 0.001, "decimal comma is accepted")
	assert.Nil(t, cards[2].Address)
}

func TestParseResultCards_DropsUnusableCards(t *testing.T) {
	html := `<div role="feed">
	  <div class="Nv2PK"><div class="qBF1Pd">No Link Hospital</div></div>
	  <div class="Nv2PK"><a class="hfpxzc" href="https://maps.example/x"></a></div>
	  <div class="Nv2PK">
	    <a class="hfpxzc" href="https://maps.example/ok"></a>
	    <div class="qBF1Pd">Usable Hospital</div>
	  </div>
	</div>`
	cards, err := parseResultCards(html, 10)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Usable Hospital", cards[0].Name)
}

func TestParseReviewBlocks_CapsAndPreservesOrder(t *testing.T) {
	reviews, err := parseReviewBlocks(reviewsFixture(), 3)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Reviewer One", derefString(reviews[0].Author))
	assert.Equal(t, "Reviewer Two", derefString(reviews[1].Author))
	assert.Equal(t, "Reviewer Three", derefString(reviews[2].Author))
	require.NotNil(t, reviews[2].Rating)
	assert.InDelta(t, 1, *reviews[2].Rating, 0.001)
	assert.Equal(t, "3 weeks ago", derefString(reviews[2].Date))
}

func TestParseReviewBlocks_MissingFieldsStayNil(t *testing.T) {
	html := `<div role="main">` + reviewBlock("r1", "", "", "Only text here", "") + `</div>`
	reviews, err := parseReviewBlocks(html, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Nil(t, reviews[0].Author)
	assert.Nil(t, reviews[0].Rating)
	assert.Nil(t, reviews[0].Date)
	assert.Equal(t, "Only text here", derefString(reviews[0].Text))
}

func TestParseReviewBlocks_SkipsEmptyBlocks(t *testing.T) {
	html := `<div role="main"><div class="jJc9Ad"></div>` +
		reviewBlock("r1", "Someone", "", "", "") + `</div>`
	reviews, err := parseReviewBlocks(html, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Someone", derefString(reviews[0].Author))
}

func TestParseReviewBlocks_DedupesRerenderedBlocks(t *testing.T) {
	dup := reviewBlock("r1", "Reviewer One", "5 stars", "Great care", "2 months ago")
	html := `<div role="main">` + dup +
		reviewBlock("r2", "Reviewer Two", "4 stars", "Fine", "a year ago") + dup + `</div>`
	reviews, err := parseReviewBlocks(html, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
}

func TestParseReviewBlocks_FallbackSelector(t *testing.T) {
	html := `<div role="main">
	  <div data-review-id="z1"><div class="d4r55">Fallback Author</div></div>
	</div>`
	reviews, err := parseReviewBlocks(html, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Fallback Author", derefString(reviews[0].Author))
}

func TestParseReviewBlocks_RatingLabelVariants(t *testing.T) {
	html := `<div role="main">` +
		reviewBlock("r1", "A", "Rated 4.5 out of 5 stars", "x", "") +
		reviewBlock("r2", "B", "5 stars", "y", "") +
		`</div>`
	reviews, err := parseReviewBlocks(html, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.InDelta(t, 4.5, derefFloat(reviews[0].Rating), 0.001)
	assert.InDelta(t, 5, derefFloat(reviews[1].Rating), 0.001)
}

func TestReviewRecord_AbsentFieldsSerializeAsNull(t *testing.T) {
	data, err := json.Marshal(ReviewRecord{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":null,"rating":null,"text":null,"date":null}`, string(data))
}
