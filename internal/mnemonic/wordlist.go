package mnemonic

// wordlist is the fixed 256-word list used to render bytes as
// human-pronounceable phrases. Every word is 5-8 letters, all 3-letter
// prefixes are unique, and every pair of words is at least a
// Damerau-Levenshtein distance of 4 apart, so a single-character typo
// never makes one word resemble another closely enough to be
// ambiguous.
var wordlist = [256]string{
	"abraham", "academy", "acrobat", "admiral", "airport", "alaska", "albino", "amazon",
	"america", "android", "antenna", "apollo", "aquarium", "artist", "athens", "atlantic",
	"attorney", "auburn", "austria", "baghdad", "barbeque", "basket", "bazooka", "beehive",
	"beggar", "belfast", "benjamin", "berlin", "bhutan", "bicycle", "bishop", "bitcoin",
	"blood", "boeing", "bridge", "broccoli", "brussels", "buddha", "buffalo", "builder",
	"caesar", "canada", "captain", "caucasus", "champion", "chicago", "church", "clarinet",
	"coconut", "colombia", "computer", "corsica", "cowboy", "crown", "crystal", "cyprus",
	"damascus", "deputy", "detroit", "diamond", "diesel", "diploma", "doctor", "dolphin",
	"dubai", "edison", "egypt", "einstein", "elephant", "embassy", "emperor", "engine",
	"escort", "ethiopia", "fairy", "ferrari", "firefly", "flower", "football", "forest",
	"france", "freddie", "gameboy", "gandhi", "geisha", "georgia", "germany", "ghost",
	"glasgow", "google", "gorilla", "gotham", "guitar", "gymnast", "hannibal", "harvard",
	"hawaii", "headset", "heineken", "hendrix", "hippo", "hogwarts", "hospital", "hotel",
	"hubble", "hyundai", "ironman", "island", "istanbul", "italy", "jakarta", "jericho",
	"jigsaw", "joystick", "jukebox", "julius", "kangaroo", "karachi", "kashmir", "kennedy",
	"keyboard", "kingdom", "kodak", "kyoto", "laptop", "lasagna", "leather", "leibniz",
	"leonardo", "library", "lobster", "london", "macbook", "madonna", "mechanic", "mercedes",
	"messi", "mosquito", "movie", "muffin", "muhammad", "mushroom", "nagasaki", "nairobi",
	"namibia", "necklace", "netflix", "newton", "nigeria", "nintendo", "norway", "obama",
	"octopus", "office", "okinawa", "ontario", "origami", "orwell", "ostrich", "oxford",
	"package", "pakistan", "paper", "pelican", "peugeot", "pharaoh", "picasso", "pilot",
	"plumber", "podium", "popcorn", "porsche", "potato", "present", "princess", "prophet",
	"pumpkin", "pyramid", "python", "queen", "radio", "rainbow", "redneck", "renault",
	"reporter", "rhubarb", "romania", "rousseau", "saddam", "salmon", "samurai", "satoshi",
	"school", "scorpion", "seattle", "server", "shanghai", "sheriff", "siemens", "simpson",
	"slippers", "smith", "socrates", "soldier", "sparrow", "squid", "stone", "student",
	"sunlight", "surgeon", "suzuki", "taiwan", "teacup", "temple", "tequila", "texas",
	"theatre", "titanic", "tobacco", "tokyo", "tolstoy", "toronto", "toshiba", "trinidad",
	"trumpet", "tsunami", "tunisia", "turkey", "tuscany", "tuxedo", "ukraine", "umbrella",
	"uranium", "uruguay", "valley", "vampire", "veteran", "viagra", "vietnam", "village",
	"virginia", "vivaldi", "vladimir", "volcano", "voyager", "waffle", "walnut", "warrior",
	"watanabe", "webcam", "whisky", "wizard", "xerox", "yoghurt", "yokohama", "zimbabwe",
}

var wordIndex = func() map[string]byte {
	m := make(map[string]byte, len(wordlist))
	for i, w := range wordlist {
		m[w] = byte(i)
	}
	return m
}()
