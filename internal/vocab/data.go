package vocab

// Built-in Sims 4 vocabulary: English game labels paired with Swedish display
// labels.

// traits includes "Jealous" twice; Lookup resolves it to the first entry
// and Duplicates reports it.
var traits = Table{
	// Emotional traits
	{Source: "Active", Target: "Aktiv"},
	{Source: "Cheerful", Target: "Glad"},
	{Source: "Creative", Target: "Kreativ"},
	{Source: "Genius", Target: "Geni"},
	{Source: "Gloomy", Target: "Dystert"},
	{Source: "Goofball", Target: "Tok"},
	{Source: "Hot-Headed", Target: "Hetsig"},
	{Source: "Romantic", Target: "Romantisk"},
	{Source: "Self-Assured", Target: "Självsäker"},

	// Hobby traits
	{Source: "Art Lover", Target: "Konstälskare"},
	{Source: "Bookworm", Target: "Bokmal"},
	{Source: "Foodie", Target: "Matnörd"},
	{Source: "Geek", Target: "Nörd"},
	{Source: "Loves Outdoors", Target: "Älskar utomhus"},
	{Source: "Music Lover", Target: "Musikälskare"},
	{Source: "Perfectionist", Target: "Perfektionist"},

	// Lifestyle traits
	{Source: "Ambitious", Target: "Ambitiös"},
	{Source: "Childish", Target: "Barnslig"},
	{Source: "Clumsy", Target: "Klumpig"},
	{Source: "Commitment Issues", Target: "Rädd för åtaganden"},
	{Source: "Dance Machine", Target: "Dansmaskin"},
	{Source: "Family-Oriented", Target: "Familjeorienterad"},
	{Source: "Glutton", Target: "Frossare"},
	{Source: "Lazy", Target: "Lat"},
	{Source: "Loner", Target: "Ensamvarg"},
	{Source: "Loves the Cold", Target: "Älskar kyla"},
	{Source: "Loves the Heat", Target: "Älskar värme"},
	{Source: "Materialistic", Target: "Materialistisk"},
	{Source: "Neat", Target: "Städnisse"},
	{Source: "Noncommittal", Target: "Oengagerad"},
	{Source: "Slob", Target: "Slarver"},
	{Source: "Snob", Target: "Snobb"},
	{Source: "Squeamish", Target: "Kräsen"},
	{Source: "Vegetarian", Target: "Vegetarian"},

	// Social traits
	{Source: "Bro", Target: "Brorsa"},
	{Source: "Evil", Target: "Ond"},
	{Source: "Good", Target: "God"},
	{Source: "Hates Children", Target: "Hatar barn"},
	{Source: "Insider", Target: "Insider"},
	{Source: "Jealous", Target: "Svartsjuk"},
	{Source: "Mean", Target: "Elak"},
	{Source: "Outgoing", Target: "Utåtriktad"},
	{Source: "Self-Absorbed", Target: "Självupptagen"},
	{Source: "Unflirty", Target: "Oflirtig"},

	// Mental traits
	{Source: "Erratic", Target: "Oberäknelig"},
	{Source: "Kleptomaniac", Target: "Kleptoman"},
	{Source: "Paranoid", Target: "Paranoid"},

	// Toddler traits
	{Source: "Angelic", Target: "Änglalik"},
	{Source: "Charmer", Target: "Charmör"},
	{Source: "Clingy", Target: "Kletigt"},
	{Source: "Fussy", Target: "Kinkig"},
	{Source: "Independent", Target: "Självständig"},
	{Source: "Inquisitive", Target: "Nyfiken"},
	{Source: "Silly", Target: "Fnissig"},
	{Source: "Wild", Target: "Vild"},

	// Child traits
	{Source: "Whiz Kid", Target: "Snillrik"},
	{Source: "Rambunctious Scamp", Target: "Busfransen"},
	{Source: "Social Butterfly", Target: "Social fjäril"},

	// Expansion/Game Pack traits
	{Source: "Cat Lover", Target: "Kattälskare"},
	{Source: "Dog Lover", Target: "Hundälskare"},
	{Source: "High Maintenance", Target: "Kräver mycket"},
	{Source: "Jealous", Target: "Svartsjuk"},
	{Source: "Maker", Target: "Skapare"},
	{Source: "Recycle Disciple", Target: "Återvinningsfanatiker"},
	{Source: "Freegan", Target: "Gratisätare"},
	{Source: "Green Fiend", Target: "Miljökämpe"},
	{Source: "Proper", Target: "Korrekt"},
	{Source: "Adventurous", Target: "Äventyrlig"},
	{Source: "Overachiever", Target: "Överpresterare"},
	{Source: "Party Animal", Target: "Festpransen"},
	{Source: "Socially Awkward", Target: "Socialt klumpig"},
	{Source: "Loyal", Target: "Lojal"},
	{Source: "Lactose Intolerant", Target: "Laktosintolerant"},
}

// aspirations are grouped the way the in-game picker groups them.
var aspirations = CategoryTable{
	{Name: "Kreativitet", Entries: Table{
		{Source: "Master Chef", Target: "Mästerkock"},
		{Source: "Master Mixologist", Target: "Mästerbartender"},
		{Source: "Musical Genius", Target: "Musikaliskt geni"},
		{Source: "Painter Extraordinaire", Target: "Extraordinär målare"},
		{Source: "Bestselling Author", Target: "Bästsäljarförfattare"},
	}},
	{Name: "Förmögenhet", Entries: Table{
		{Source: "Fabulously Wealthy", Target: "Sagolikt rik"},
		{Source: "Mansion Baron", Target: "Herrgårdsbaron"},
		{Source: "Freelance Botanist", Target: "Frilansande botaniker"},
	}},
	{Name: "Familj", Entries: Table{
		{Source: "Big Happy Family", Target: "Stor lycklig familj"},
		{Source: "Successful Lineage", Target: "Framgångsrik släkt"},
		{Source: "Super Parent", Target: "Superförälder"},
	}},
	{Name: "Kärlek", Entries: Table{
		{Source: "Serial Romantic", Target: "Seriell romantiker"},
		{Source: "Soulmate", Target: "Själsfrände"},
	}},
	{Name: "Kunskap", Entries: Table{
		{Source: "Computer Whiz", Target: "Datorunderbarn"},
		{Source: "Nerd Brain", Target: "Nördhjärna"},
		{Source: "Renaissance Sim", Target: "Renässanssim"},
		{Source: "Academic", Target: "Akademiker"},
		{Source: "Archaeology Scholar", Target: "Arkeologiforskare"},
	}},
	{Name: "Popularitet", Entries: Table{
		{Source: "Friend of the World", Target: "Världens vän"},
		{Source: "Party Animal", Target: "Festdjur"},
		{Source: "Joke Star", Target: "Skämtstjärna"},
		{Source: "World-Famous Celebrity", Target: "Världsberömd kändis"},
		{Source: "Leader of the Pack", Target: "Ledare för flocken"},
	}},
	{Name: "Atletisk", Entries: Table{
		{Source: "Bodybuilder", Target: "Kroppsbyggare"},
		{Source: "Extreme Sports Enthusiast", Target: "Extremsportentusiast"},
	}},
	{Name: "Natur", Entries: Table{
		{Source: "Angler Extraordinaire", Target: "Extraordinär fiskare"},
		{Source: "Curator", Target: "Kurator"},
		{Source: "Jungle Explorer", Target: "Djungelutforskare"},
		{Source: "Beach Life", Target: "Strandliv"},
	}},
	{Name: "Mat & Dryck", Entries: Table{
		{Source: "Grilled Cheese", Target: "Grillad ost"},
	}},
	{Name: "Deviancy", Entries: Table{
		{Source: "Chief of Mischief", Target: "Busens mästare"},
		{Source: "Public Enemy", Target: "Allmänhetens fiende"},
	}},
}

// careers, "Unemployed" first.
var careers = Table{
	{Source: "Unemployed", Target: "Arbetslös"},
	{Source: "Astronaut", Target: "Astronaut"},
	{Source: "Athlete", Target: "Idrottare"},
	{Source: "Business", Target: "Affärsman"},
	{Source: "Criminal", Target: "Kriminell"},
	{Source: "Critic", Target: "Kritiker"},
	{Source: "Culinary", Target: "Kulinarisk"},
	{Source: "Detective", Target: "Detektiv"},
	{Source: "Doctor", Target: "Läkare"},
	{Source: "Entertainer", Target: "Underhållare"},
	{Source: "Gardener", Target: "Trädgårdsmästare"},
	{Source: "Journalist", Target: "Journalist"},
	{Source: "Military", Target: "Militär"},
	{Source: "Painter", Target: "Målare"},
	{Source: "Politician", Target: "Politiker"},
	{Source: "Scientist", Target: "Vetenskapsman"},
	{Source: "Secret Agent", Target: "Hemlig agent"},
	{Source: "Social Media", Target: "Sociala medier"},
	{Source: "Style Influencer", Target: "Stilinfluencer"},
	{Source: "Tech Guru", Target: "Teknikguru"},
	{Source: "Writer", Target: "Författare"},
	{Source: "Actor", Target: "Skådespelare"},
	{Source: "Conservationist", Target: "Naturvårdare"},
	{Source: "Civil Designer", Target: "Stadsplanerare"},
	{Source: "Education", Target: "Lärare"},
	{Source: "Engineer", Target: "Ingenjör"},
	{Source: "Law", Target: "Jurist"},
	{Source: "Freelancer", Target: "Frilansare"},
	{Source: "Salaryperson", Target: "Kontorsarbetare"},
}

// skills carry the highest level the game allows.
var skills = Table{
	{Source: "Acting", Target: "Skådespeleri", MaxLevel: 10},
	{Source: "Archaeology", Target: "Arkeologi", MaxLevel: 10},
	{Source: "Baking", Target: "Bakning", MaxLevel: 10},
	{Source: "Charisma", Target: "Karisma", MaxLevel: 10},
	{Source: "Comedy", Target: "Komedi", MaxLevel: 10},
	{Source: "Cooking", Target: "Matlagning", MaxLevel: 10},
	{Source: "Dancing", Target: "Dans", MaxLevel: 10},
	{Source: "DJ Mixing", Target: "DJ-mixning", MaxLevel: 10},
	{Source: "Fabrication", Target: "Tillverkning", MaxLevel: 10},
	{Source: "Fishing", Target: "Fiske", MaxLevel: 10},
	{Source: "Fitness", Target: "Fitness", MaxLevel: 10},
	{Source: "Flower Arranging", Target: "Blomsterarrangemang", MaxLevel: 10},
	{Source: "Gardening", Target: "Trädgårdsarbete", MaxLevel: 10},
	{Source: "Gourmet Cooking", Target: "Gourmetmatlagning", MaxLevel: 10},
	{Source: "Guitar", Target: "Gitarr", MaxLevel: 10},
	{Source: "Handiness", Target: "Händighet", MaxLevel: 10},
	{Source: "Herbalism", Target: "Örtlära", MaxLevel: 10},
	{Source: "Juice Fizzing", Target: "Juiceblandning", MaxLevel: 10},
	{Source: "Knitting", Target: "Stickning", MaxLevel: 10},
	{Source: "Logic", Target: "Logik", MaxLevel: 10},
	{Source: "Media Production", Target: "Medieproduktion", MaxLevel: 10},
	{Source: "Mischief", Target: "Rackartyg", MaxLevel: 10},
	{Source: "Mixology", Target: "Mixologi", MaxLevel: 10},
	{Source: "Painting", Target: "Målning", MaxLevel: 10},
	{Source: "Parenting", Target: "Föräldraskap", MaxLevel: 10},
	{Source: "Photography", Target: "Fotografering", MaxLevel: 10},
	{Source: "Piano", Target: "Piano", MaxLevel: 10},
	{Source: "Pipe Organ", Target: "Piporgel", MaxLevel: 10},
	{Source: "Programming", Target: "Programmering", MaxLevel: 10},
	{Source: "Research and Debate", Target: "Forskning och debatt", MaxLevel: 10},
	{Source: "Robotics", Target: "Robotik", MaxLevel: 10},
	{Source: "Rock Climbing", Target: "Klättring", MaxLevel: 10},
	{Source: "Rocket Science", Target: "Raketvetenskap", MaxLevel: 10},
	{Source: "Selvadoradian Culture", Target: "Selvadoradisk kultur", MaxLevel: 5},
	{Source: "Singing", Target: "Sång", MaxLevel: 10},
	{Source: "Skiing", Target: "Skidåkning", MaxLevel: 10},
	{Source: "Snowboarding", Target: "Snowboard", MaxLevel: 10},
	{Source: "Vampire Lore", Target: "Vampyrlära", MaxLevel: 15},
	{Source: "Veterinarian", Target: "Veterinär", MaxLevel: 10},
	{Source: "Video Gaming", Target: "Videospel", MaxLevel: 10},
	{Source: "Violin", Target: "Violin", MaxLevel: 10},
	{Source: "Wellness", Target: "Välmående", MaxLevel: 10},
	{Source: "Writing", Target: "Skrivande", MaxLevel: 10},
}

// ages are in life-stage order.
var ages = Table{
	{Source: "Baby", Target: "Baby"},
	{Source: "Infant", Target: "Spädbarn"},
	{Source: "Toddler", Target: "Toddler"},
	{Source: "Child", Target: "Barn"},
	{Source: "Teen", Target: "Tonåring"},
	{Source: "Young Adult", Target: "Ung vuxen"},
	{Source: "Adult", Target: "Vuxen"},
	{Source: "Elder", Target: "Äldre"},
}
