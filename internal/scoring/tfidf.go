// Package scoring implements the deterministic fit-score engine: a TF-IDF
// cosine similarity between a flattened resume and a flattened job
// description, scaled to 0-100.
package scoring

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/talent-scout/internal/types"
)

// FitScore returns the 0-100 compatibility score between a resume and a job
// description, rounded to two decimals. An empty document on either side
// scores 0.
func FitScore(resume *types.ResumeData, job *types.JobDescription) float64 {
	resumeTerms := terms(resumeDocument(resume))
	jobTerms := terms(jobDocument(job))

	sim := cosineSimilarity(resumeTerms, jobTerms)
	return math.Round(sim*100*100) / 100
}

// terms tokenizes a document and returns its unigrams and bigrams. Bigrams
// are formed after stop-word removal, so a bigram can span a removed word.
func terms(document string) []string {
	tokens := tokenize(document)

	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// tokenize lowercases the document and keeps runs of two or more word
// characters, minus stop words. Single-character tokens (including bare
// digits) are dropped.
func tokenize(document string) []string {
	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}

	var tokens []string
	fields := strings.FieldsFunc(strings.ToLower(document), func(r rune) bool {
		return !isWordRune(r)
	})
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// cosineSimilarity computes the cosine of the two documents' TF-IDF vectors
// over the two-document corpus, using smoothed IDF and L2 normalization.
func cosineSimilarity(docA, docB []string) float64 {
	countsA := termCounts(docA)
	countsB := termCounts(docB)

	vocab := make(map[string]struct{}, len(countsA)+len(countsB))
	for term := range countsA {
		vocab[term] = struct{}{}
	}
	for term := range countsB {
		vocab[term] = struct{}{}
	}

	const nDocs = 2.0
	var dot, normA, normB float64
	for term := range vocab {
		df := 0.0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		idf := math.Log((1+nDocs)/(1+df)) + 1

		wA := float64(countsA[term]) * idf
		wB := float64(countsB[term]) * idf
		dot += wA * wB
		normA += wA * wA
		normB += wB * wB
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}
