// FoodReview Recommender - Restaurant Recommendation Service
// Copyright 2026 Linh T. (linhtinhlt)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linhtinhlt/foodreview

package recommend

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// categoryWeight repeats the category name in the feature text so it
// carries more weight than an ordinary description term.
const categoryWeight = 3

// featureText assembles the raw text a restaurant's content vector is
// built from: name, category name repeated categoryWeight times, then
// the description.
func featureText(r Restaurant, categories map[int]string) string {
	var b strings.Builder
	b.WriteString(r.Name)
	if name, ok := categories[r.CategoryID]; ok && name != "" {
		for i := 0; i < categoryWeight; i++ {
			b.WriteByte(' ')
			b.WriteString(name)
		}
	}
	if r.Description != "" {
		b.WriteByte(' ')
		b.WriteString(r.Description)
	}
	return b.String()
}

// tokenize lowercases the text and splits it into word tokens of at
// least two characters, then appends the adjacent-pair bigrams. Bigram
// terms join their parts with a single space.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	unigrams := words[:0:0]
	for _, w := range words {
		if len([]rune(w)) >= 2 {
			unigrams = append(unigrams, w)
		}
	}
	tokens := make([]string, 0, 2*len(unigrams))
	tokens = append(tokens, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		tokens = append(tokens, unigrams[i]+" "+unigrams[i+1])
	}
	return tokens
}

// BuildFeatureMatrix computes the TF-IDF content matrix over the catalog.
//
// Term frequency is the raw in-document count, inverse document
// frequency is smoothed as ln((1+n)/(1+df))+1, and each row is scaled to
// unit L2 length. A final column L2 pass normalizes each term column so
// frequent terms do not dominate profile dot products.
//
// Returns an error when no restaurant yields a single token, since an
// empty vocabulary cannot back a usable matrix.
func BuildFeatureMatrix(restaurants []Restaurant, categories []Category) (*FeatureMatrix, error) {
	catNames := make(map[int]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}

	docs := make([][]string, len(restaurants))
	df := make(map[string]int)
	for i, r := range restaurants {
		docs[i] = tokenize(featureText(r, catNames))
		seen := make(map[string]struct{}, len(docs[i]))
		for _, t := range docs[i] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, errors.New("feature matrix: empty vocabulary")
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)
	termIndex := make(map[string]int, len(vocab))
	for j, t := range vocab {
		termIndex[t] = j
	}

	n := float64(len(restaurants))
	idf := make([]float64, len(vocab))
	for j, t := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	rows := make([][]float64, len(restaurants))
	for i, doc := range docs {
		row := make([]float64, len(vocab))
		for _, t := range doc {
			row[termIndex[t]]++
		}
		for j := range row {
			row[j] *= idf[j]
		}
		l2NormalizeRow(row)
		rows[i] = row
	}

	// Column normalization runs over the whole matrix at once.
	for j := range vocab {
		var sum float64
		for i := range rows {
			sum += rows[i][j] * rows[i][j]
		}
		if sum == 0 {
			continue
		}
		norm := math.Sqrt(sum)
		for i := range rows {
			rows[i][j] /= norm
		}
	}

	return &FeatureMatrix{Rows: rows, Vocabulary: vocab}, nil
}
