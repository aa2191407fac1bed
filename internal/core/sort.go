package core

// SelectionSort orders courses by Title in place. It always makes n-1
// passes, swapping the smallest remaining title into position. Not stable.
func SelectionSort(courses []Course) {
	for i := 0; i < len(courses)-1; i++ {
		smallest := i
		for j := i + 1; j < len(courses); j++ {
			if courses[j].Title < courses[smallest].Title {
				smallest = j
			}
		}
		courses[i], courses[smallest] = courses[smallest], courses[i]
	}
}

// QuickSort orders courses[begin:end+1] by Title in place. end is inclusive;
// sort a whole slice with QuickSort(c, 0, len(c)-1). Not stable.
//
// The smaller side of each split is sorted recursively and the larger side
// in the loop, so the stack grows at most O(log n) deep even when the
// middle pivot splits badly.
func QuickSort(courses []Course, begin, end int) {
	for begin < end {
		split := partition(courses, begin, end)
		if split-begin < end-split {
			QuickSort(courses, begin, split)
			begin = split + 1
		} else {
			QuickSort(courses, split+1, end)
			end = split
		}
	}
}

// partition rearranges courses[begin:end+1] around the title of the middle
// element and returns a split point s with begin <= s < end such that no
// title in [begin, s] is greater than any title in [s+1, end].
//
// The pivot title is copied before the loop; swaps may move the pivot
// element itself.
func partition(courses []Course, begin, end int) int {
	pivot := courses[begin+(end-begin)/2].Title
	low, high := begin, end

	for {
		for courses[low].Title < pivot {
			low++
		}
		for pivot < courses[high].Title {
			high--
		}

		if low >= high {
			return high
		}

		courses[low], courses[high] = courses[high], courses[low]
		low++
		high--
	}
}
