package bible

import "fmt"

type Book struct {
	ID    int
	Name  string
	Short string
}

// Books is the protestant canon in order; IDs are 1-based.
var Books = []Book{
	{1, "Genesis", "Gen"},
	{2, "Exodus", "Exod"},
	{3, "Leviticus", "Lev"},
	{4, "Numbers", "Num"},
	{5, "Deuteronomy", "Deut"},
	{6, "Joshua", "Josh"},
	{7, "Judges", "Judg"},
	{8, "Ruth", "Ruth"},
	{9, "1 Samuel", "1 Sam"},
	{10, "2 Samuel", "2 Sam"},
	{11, "1 Kings", "1 Kgs"},
	{12, "2 Kings", "2 Kgs"},
	{13, "1 Chronicles", "1 Chr"},
	{14, "2 Chronicles", "2 Chr"},
	{15, "Ezra", "Ezra"},
	{16, "Nehemiah", "Neh"},
	{17, "Esther", "Est"},
	{18, "Job", "Job"},
	{19, "Psalms", "Ps"},
	{20, "Proverbs", "Prov"},
	{21, "Ecclesiastes", "Eccl"},
	{22, "Song of Solomon", "Song"},
	{23, "Isaiah", "Isa"},
	{24, "Jeremiah", "Jer"},
	{25, "Lamentations", "Lam"},
	{26, "Ezekiel", "Ezek"},
	{27, "Daniel", "Dan"},
	{28, "Hosea", "Hos"},
	{29, "Joel", "Joel"},
	{30, "Amos", "Amos"},
	{31, "Obadiah", "Obad"},
	{32, "Jonah", "Jonah"},
	{33, "Micah", "Mic"},
	{34, "Nahum", "Nah"},
	{35, "Habakkuk", "Hab"},
	{36, "Zephaniah", "Zeph"},
	{37, "Haggai", "Hag"},
	{38, "Zechariah", "Zech"},
	{39, "Malachi", "Mal"},
	{40, "Matthew", "Matt"},
	{41, "Mark", "Mark"},
	{42, "Luke", "Luke"},
	{43, "John", "John"},
	{44, "Acts", "Acts"},
	{45, "Romans", "Rom"},
	{46, "1 Corinthians", "1 Cor"},
	{47, "2 Corinthians", "2 Cor"},
	{48, "Galatians", "Gal"},
	{49, "Ephesians", "Eph"},
	{50, "Philippians", "Phil"},
	{51, "Colossians", "Col"},
	{52, "1 Thessalonians", "1 Thess"},
	{53, "2 Thessalonians", "2 Thess"},
	{54, "1 Timothy", "1 Tim"},
	{55, "2 Timothy", "2 Tim"},
	{56, "Titus", "Titus"},
	{57, "Philemon", "Phlm"},
	{58, "Hebrews", "Heb"},
	{59, "James", "Jas"},
	{60, "1 Peter", "1 Pet"},
	{61, "2 Peter", "2 Pet"},
	{62, "1 John", "1 John"},
	{63, "2 John", "2 John"},
	{64, "3 John", "3 John"},
	{65, "Jude", "Jude"},
	{66, "Revelation", "Rev"},
}

var bookByID = func() map[int]Book {
	m := make(map[int]Book, len(Books))
	for _, b := range Books {
		m[b.ID] = b
	}
	return m
}()

// BookName returns the full name of a book, or "Book N" for an unknown id.
func BookName(id int) string {
	if b, ok := bookByID[id]; ok {
		return b.Name
	}
	return fmt.Sprintf("Book %d", id)
}

// BookShort returns the abbreviated name of a book, or "BN" for an unknown id.
func BookShort(id int) string {
	if b, ok := bookByID[id]; ok {
		return b.Short
	}
	return fmt.Sprintf("B%d", id)
}

// FormatReference renders a verse location as "Genesis 1:1".
func FormatReference(book, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", BookName(book), chapter, verse)
}
