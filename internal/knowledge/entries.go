package knowledge

// builtinEntries returns the curated answer table. Entry and pattern order
// matter: the resolver scans them in this order and the first structural
// match wins.
func builtinEntries() map[string][]Entry {
	return map[string][]Entry{
		"segment": {
			NewEntry(
				[]string{
					`how.*set up.*source.*segment`,
					`create.*source.*segment`,
					`add.*source.*segment`,
					`configure.*source.*segment`,
					`set up.*source`,
					`create.*source`,
					`add.*source`,
					`new source`,
					`source.*setup`,
					`source.*configuration`,
					`start.*source`,
				},
				`To set up a new source in Segment:

1. Log in to your Segment workspace
2. Click on 'Sources' in the navigation
3. Click 'Add Source'
4. Choose your source type (Website, Server, Mobile App, etc.)
5. Follow the setup instructions for your specific source type
6. Add the Segment snippet or SDK to your application
7. Configure any additional settings

For more details, visit: https://segment.com/docs/connections/sources/`,
				"Segment Documentation",
				"https://segment.com/docs/connections/sources/",
			),
			NewEntry(
				[]string{
					`what.*segment`,
					`segment.*overview`,
					`segment.*introduction`,
					`explain.*segment`,
					`segment.*capabilities`,
				},
				`Segment is a Customer Data Platform (CDP) that helps you:

1. Collect customer data from any source
2. Clean and transform your data
3. Send it to any destination
4. Create unified customer profiles
5. Implement tracking without complex coding

Key features:
- Multiple source types (web, mobile, server)
- 300+ integration destinations
- Real-time data synchronization
- Data governance and privacy tools

For more information, visit: https://segment.com/docs/`,
				"Segment Overview",
				"https://segment.com/docs/",
			),
		},
		"mparticle": {
			NewEntry(
				[]string{
					`how.*set up.*mparticle`,
					`mparticle.*integration`,
					`mparticle.*setup`,
					`configure.*mparticle`,
					`start.*mparticle`,
					`implement.*mparticle`,
				},
				`To get started with mParticle:

1. Create an mParticle account
2. Set up a new workspace
3. Create an input (source) for your data
4. Choose your platform (iOS, Android, Web)
5. Install the mParticle SDK
6. Configure your data collection
7. Set up outputs (destinations)

Key implementation steps:
- Add the SDK to your application
- Initialize the SDK with your API credentials
- Configure data collection points
- Set up user identification

For detailed instructions, visit: https://docs.mparticle.com/`,
				"mParticle Documentation",
				"https://docs.mparticle.com/",
			),
		},
		"lytics": {
			NewEntry(
				[]string{
					`how.*use.*lytics`,
					`lytics.*setup`,
					`implement.*lytics`,
					`configure.*lytics`,
					`start.*lytics`,
				},
				`To implement Lytics in your application:

1. Create a Lytics account
2. Set up your data collection
3. Install the Lytics JavaScript tag
4. Configure your data streams
5. Set up user identification
6. Create audience segments
7. Activate your data

Key features:
- Behavioral tracking
- Machine learning predictions
- Real-time personalization
- Cross-channel orchestration

For implementation details, visit: https://learn.lytics.com/`,
				"Lytics Documentation",
				"https://learn.lytics.com/",
			),
		},
		"zeotap": {
			NewEntry(
				[]string{
					`how.*configure.*zeotap`,
					`zeotap.*setup`,
					`implement.*zeotap`,
					`start.*zeotap`,
					`use.*zeotap`,
				},
				`To set up Zeotap:

1. Create your Zeotap account
2. Configure your data sources
3. Set up the Zeotap tag
4. Define your user identification strategy
5. Configure data collection
6. Set up audience segments
7. Activate your data destinations

Key capabilities:
- Customer data unification
- Identity resolution
- Audience segmentation
- Cross-channel activation

For detailed setup instructions, visit: https://docs.zeotap.com/`,
				"Zeotap Documentation",
				"https://docs.zeotap.com/",
			),
		},
	}
}
