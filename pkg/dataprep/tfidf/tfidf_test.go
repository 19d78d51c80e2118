package tfidf

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/dataprep/pkg/dataprep/docfreq"
)

const eps = 1e-12

func dfOf(docs docfreq.TokenizedCorpus) docfreq.Map {
	df := docfreq.NewMap()
	for _, d := range docs {
		df.AddDocument(d.Name, d.Tokens)
	}
	return df
}

func trainingDocs() docfreq.TokenizedCorpus {
	return docfreq.TokenizedCorpus{
		{Name: "doc1", Path: "train/doc1", Label: "A", Tokens: []string{"cat", "dog", "cat"}},
		{Name: "doc2", Path: "train/doc2", Label: "B", Tokens: []string{"dog", "bird"}},
		{Name: "doc3", Path: "train/doc3", Label: "A", Tokens: []string{"cat", "bird", "bird"}},
	}
}

func TestVectorizeThreeDocuments(t *testing.T) {
	docs := trainingDocs()
	df := dfOf(docs).Cull(0, 3)

	v := NewVectorizer(df)
	if got := v.Vocabulary().Tokens(); !reflect.DeepEqual(got, []string{"bird", "cat", "dog"}) {
		t.Fatalf("Vocabulary = %v", got)
	}

	vectors, err := v.Transform(docs, Options{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(vectors))
	}

	idf := math.Log(3.0 / 2.0)
	twice := (1 + math.Log(2)) * idf

	expected := []LabeledVector{
		{Vector: FeatureVector{0, twice, idf}, Label: "A"},
		{Vector: FeatureVector{idf, 0, idf}, Label: "B"},
		{Vector: FeatureVector{twice, idf, 0}, Label: "A"},
	}

	for i, want := range expected {
		got := vectors[i]
		if got.Label != want.Label {
			t.Errorf("doc%d label = %s, want %s", i+1, got.Label, want.Label)
		}
		for j := range want.Vector {
			if math.Abs(got.Vector[j]-want.Vector[j]) > eps {
				t.Errorf("doc%d[%d] = %v, want %v", i+1, j, got.Vector[j], want.Vector[j])
			}
		}
	}
}

func TestVectorLengthEqualsVocabulary(t *testing.T) {
	docs := docfreq.TokenizedCorpus{
		{Name: "short", Tokens: []string{"a"}},
		{Name: "long", Tokens: []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
		{Name: "empty", Tokens: []string{}},
	}
	df := dfOf(docs)

	vectors, err := Vectorize(docs, df, Options{})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	for _, lv := range vectors {
		if len(lv.Vector) != len(df) {
			t.Errorf("vector length %d, want %d", len(lv.Vector), len(df))
		}
	}
}

func TestTokensOutsideVocabularyHaveNoEffect(t *testing.T) {
	base := trainingDocs()
	df := dfOf(base)

	noisy := trainingDocs()
	noisy[0].Tokens = append(noisy[0].Tokens, "zzz", "zzz", "qqq")
	noisy[2].Tokens = append([]string{"qqq"}, noisy[2].Tokens...)

	want, err := Vectorize(base, df, Options{})
	if err != nil {
		t.Fatalf("Vectorize base: %v", err)
	}
	got, err := Vectorize(noisy, df, Options{})
	if err != nil {
		t.Fatalf("Vectorize noisy: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("Out-of-vocabulary tokens changed the vectors")
	}
}

func TestTokenInEveryDocumentWeighsZero(t *testing.T) {
	docs := docfreq.TokenizedCorpus{
		{Name: "d1", Label: "x", Tokens: []string{"the"}},
		{Name: "d2", Label: "x", Tokens: []string{"the", "the"}},
		{Name: "d3", Label: "y", Tokens: []string{"the", "the", "the"}},
	}

	vectors, err := Vectorize(docs, dfOf(docs), Options{})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	for i, lv := range vectors {
		if len(lv.Vector) != 1 || lv.Vector[0] != 0.0 {
			t.Errorf("doc %d: expected [0], got %v", i, lv.Vector)
		}
	}
}

func TestVectorizeIsIdempotent(t *testing.T) {
	docs := trainingDocs()
	df := dfOf(docs)

	first, err := Vectorize(docs, df, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Vectorize(docs, df, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatal("Vectorize is not deterministic")
		}
	}
}

func TestTestModeSingleDocumentWeighsZero(t *testing.T) {
	trainDF := dfOf(trainingDocs())

	test := docfreq.TokenizedCorpus{
		{Name: "t1", Path: "test/t1", Tokens: []string{"cat", "cat", "cat", "dog", "unseen"}},
	}

	vectors, err := Vectorize(test, trainDF, Options{TestMode: true, TestDocFreq: dfOf(test)})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(vectors) != 1 {
		t.Fatalf("Expected 1 vector, got %d", len(vectors))
	}
	if vectors[0].Label != "test/t1" {
		t.Errorf("Label = %q, want document path", vectors[0].Label)
	}
	if len(vectors[0].Vector) != 3 {
		t.Fatalf("Vector length = %d, want training vocabulary size 3", len(vectors[0].Vector))
	}
	for i, w := range vectors[0].Vector {
		if w != 0.0 {
			t.Errorf("weight[%d] = %v, want 0", i, w)
		}
	}
}

func TestTestModeUsesTestDocFreq(t *testing.T) {
	trainDF := dfOf(trainingDocs())

	test := docfreq.TokenizedCorpus{
		{Name: "t1", Path: "test/t1", Tokens: []string{"cat"}},
		{Name: "t2", Path: "test/t2", Tokens: []string{"dog"}},
		{Name: "t3", Path: "test/t3", Tokens: []string{"dog"}},
		{Name: "t4", Path: "test/t4", Tokens: []string{"dog"}},
	}

	vectors, err := Vectorize(test, trainDF, Options{TestMode: true, TestDocFreq: dfOf(test)})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}

	// vocabulary: bird, cat, dog; N = 4, test df(cat) = 1, df(dog) = 3
	if got, want := vectors[0].Vector[1], math.Log(4.0/1.0); math.Abs(got-want) > eps {
		t.Errorf("cat weight = %v, want %v", got, want)
	}
	if got, want := vectors[1].Vector[2], math.Log(4.0/3.0); math.Abs(got-want) > eps {
		t.Errorf("dog weight = %v, want %v", got, want)
	}
}

func TestTestModeWithoutTestDocFreqFallsBack(t *testing.T) {
	trainDF := dfOf(trainingDocs())
	test := docfreq.TokenizedCorpus{
		{Name: "t1", Path: "test/t1", Tokens: []string{"cat"}},
	}

	vectors, err := Vectorize(test, trainDF, Options{TestMode: true})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	// N = 1 test doc, training df(cat) = 2
	if got, want := vectors[0].Vector[1], math.Log(1.0/2.0); math.Abs(got-want) > eps {
		t.Errorf("cat weight = %v, want %v", got, want)
	}
	if vectors[0].Label != "test/t1" {
		t.Errorf("Label = %q", vectors[0].Label)
	}
}

func TestMissingDocFreqFailsLoudly(t *testing.T) {
	trainDF := dfOf(trainingDocs())
	test := docfreq.TokenizedCorpus{
		{Name: "t1", Tokens: []string{"bird"}},
	}
	mismatched := docfreq.NewMap()
	mismatched.Add("cat", "t1")

	_, err := Vectorize(test, trainDF, Options{TestMode: true, TestDocFreq: mismatched})
	if !errors.Is(err, ErrMissingDocFreq) {
		t.Errorf("Expected ErrMissingDocFreq, got %v", err)
	}
}

func TestEmptyVocabulary(t *testing.T) {
	docs := trainingDocs()
	df := dfOf(docs).Cull(3, 3)

	vectors, err := Vectorize(docs, df, Options{})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(vectors))
	}
	for _, lv := range vectors {
		if len(lv.Vector) != 0 {
			t.Errorf("Expected zero-length vector, got %v", lv.Vector)
		}
	}
}

func TestLogTF(t *testing.T) {
	tests := []struct {
		tf   int
		want float64
	}{
		{0, 0},
		{1, 1},
		{2, 1 + math.Log(2)},
		{10, 1 + math.Log(10)},
	}
	for _, tc := range tests {
		if got := LogTF(tc.tf); math.Abs(got-tc.want) > eps {
			t.Errorf("LogTF(%d) = %v, want %v", tc.tf, got, tc.want)
		}
	}
}

func TestLogIDF(t *testing.T) {
	if got := LogIDF(5, 5); got != 0 {
		t.Errorf("LogIDF(5, 5) = %v, want 0", got)
	}
	if got, want := LogIDF(10, 1), math.Log(10); math.Abs(got-want) > eps {
		t.Errorf("LogIDF(10, 1) = %v, want %v", got, want)
	}
}
