package chunk

import (
	"strings"
)

const (
	DefaultMaxChunkSize = 1000
	DefaultOverlapSize  = 100

	// 句子边界切分的最小偏移比例，低于该比例退回到定长切分
	sentenceBoundaryRatio = 0.7
)

// Split 将长文本切分为适合向量化的片段。
// 切分优先落在句末（. ! ?），若最近的句末偏移不足窗口的 70%，
// 则按窗口定长切分并回退 overlapSize 保持上下文连续。
func Split(text string, maxChunkSize, overlapSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	if overlapSize < 0 {
		overlapSize = 0
	}
	// overlap 不小于窗口时无法保证扫描前进，收敛到窗口的一半
	if overlapSize >= maxChunkSize {
		overlapSize = maxChunkSize / 2
	}

	runes := []rune(text)
	if len(runes) <= maxChunkSize {
		return []string{text}
	}

	var chunks []string
	startIndex := 0

	for startIndex < len(runes) {
		endIndex := startIndex + maxChunkSize
		if endIndex > len(runes) {
			endIndex = len(runes)
		}
		window := runes[startIndex:endIndex]

		if endIndex < len(runes) {
			lastSentenceEnd := lastTerminator(window)

			if lastSentenceEnd > int(float64(maxChunkSize)*sentenceBoundaryRatio) {
				chunks = append(chunks, strings.TrimSpace(string(window[:lastSentenceEnd+1])))
				startIndex = startIndex + lastSentenceEnd + 1
			} else {
				chunks = append(chunks, strings.TrimSpace(string(window)))
				startIndex = endIndex - overlapSize
			}
		} else {
			chunks = append(chunks, strings.TrimSpace(string(window)))
			break
		}
	}

	result := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if len(c) > 0 {
			result = append(result, c)
		}
	}
	return result
}

// SplitDefault 使用默认窗口与重叠参数切分文本
func SplitDefault(text string) []string {
	return Split(text, DefaultMaxChunkSize, DefaultOverlapSize)
}

func lastTerminator(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}
