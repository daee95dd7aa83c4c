// Package reorder, küçük bir koleksiyonun (onlarca kayıt) sürükle-bırak ile
// yeniden sıralanmasını yönetir.
//
// Üç parça vardır:
//   - Editor: ekranda gösterilen sıralı liste ve kayıt başına sürükleme durumu.
//     Bir sürükleme tamamlandığında yeni sıra hemen uygulanır (optimistic update).
//   - Syncer: yeni sıraları bir komut kuyruğuna alır ve tek bir worker
//     goroutine ile backend'e sırayla yazar. SyncState ile durumu yayınlar.
//   - List: ikisini birleştirir; service katmanı sadece List ile konuşur.
package reorder

import "errors"

// Item, sıralanabilir bir kayıt. Kimlik ItemID'dir; liste içinde benzersiz olmalıdır.
type Item interface {
	ItemID() int64
}

var (
	// ErrUnknownItem, verilen id listede yoksa döner.
	ErrUnknownItem = errors.New("unknown item")
	// ErrClosed, kapatılmış bir Syncer'a intent gönderilirse döner.
	ErrClosed = errors.New("syncer closed")
)

// Move, from indeksindeki elemanı çıkarıp to indeksine yerleştirir
// (tek eleman taşıma, genel permütasyon değil). Yeni bir slice döner;
// girdi değişmez. Geçersiz indekslerde kopyayı olduğu gibi döner.
//
//	Move([1 2 3 4], 2, 0) → [3 1 2 4]
//	Move([1 2 3 4], 0, 2) → [2 3 1 4]
func Move[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)

	if from == to || from < 0 || to < 0 || from >= len(out) || to >= len(out) {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// IDs, kayıtların id'lerini sırayla döner.
func IDs[T Item](items []T) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
