package catalog

import "github.com/matzehuels/forgeboard/pkg/tier"

// Builtin returns the registry of widget kinds shipped with the application.
func Builtin(opts ...Option) *Registry {
	return New(builtinEntries, opts...)
}

var builtinEntries = []Entry{
	{
		Key:         "stats_total",
		Title:       "Total Cards",
		Description: "Tracking the total volume of your magical collection.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "A micro-pill showing just the count and a label.",
			tier.Small:  "Standard card count widget with icon.",
			tier.Medium: "Detailed count with growth markers.",
			tier.Large:  "Full spread of collection statistics.",
			tier.XLarge: "Deep dive into total counts and distribution.",
		},
	},
	{
		Key:         "stats_decks",
		Title:       "Unique Decks",
		Description: "Your strategic fleet of decks currently active.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Compact count of distinct decks.",
			tier.Small:  "Standard deck counter.",
			tier.Medium: "Show total decks vs archive.",
			tier.Large:  "Stats on deck archetypes and colors.",
			tier.XLarge: "Advanced deck-building analytics.",
		},
	},
	{
		Key:         "stats_value",
		Title:       "Collection Value",
		Description: "Real-time market value of your entire assortment.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Brief dollar amount with high contrast label.",
			tier.Small:  "Value widget with currency symbol.",
			tier.Medium: "Display price change trends.",
			tier.Large:  "Breakdown of most valuable items.",
			tier.XLarge: "Historical value charting and top gainers.",
		},
	},
	{
		Key:         "identity",
		Title:       "Color Identity",
		Description: "A visual spectrum of your collection colors.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Top color pips in a row.",
			tier.Small:  "Pips plus name of identity.",
			tier.Medium: "Flavorful breakdown of colors.",
			tier.Large:  "Percentage distribution of mana colors.",
			tier.XLarge: "Deep meta-analysis and signature staples.",
		},
	},
	{
		Key:         "quick_actions",
		Title:       "Quick Actions",
		Description: "A dashboard hub for your most common tasks.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Icon-only vertical stack.",
			tier.Small:  "Balanced grid of action buttons.",
			tier.Medium: "Full width icon row.",
			tier.Large:  "Detailed actions with shortcuts.",
			tier.XLarge: "Admin-style toolbelt for your collection.",
		},
	},
	{
		Key:         "action_new_deck",
		Title:       "New Deck",
		Description: "Initiate a new deck building session.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Simple \"New\" button pill.",
			tier.Small:  "Standard action square.",
			tier.Medium: "Stretched action bar.",
			tier.Large:  "Action with creative flavor text.",
		},
	},
	{
		Key:         "action_add_cards",
		Title:       "Add Cards",
		Description: "Quickly add cards to your library.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Add icon pill.",
			tier.Small:  "Standard action square.",
			tier.Medium: "Stretched action bar.",
			tier.Large:  "Action with collection tips.",
		},
	},
	{
		Key:         "action_browse",
		Title:       "Browse Sets",
		Description: "Explore card sets and expansions.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Search icon pill.",
			tier.Small:  "Standard action square.",
			tier.Medium: "Stretched action bar.",
			tier.Large:  "Action with latest set spotlight.",
		},
	},
	{
		Key:         "action_wishlist",
		Title:       "Wishlist",
		Description: "Access your hunting list for new cards.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Heart icon pill.",
			tier.Small:  "Standard action square.",
			tier.Medium: "Stretched action bar.",
			tier.Large:  "Action with total wishlist value.",
		},
	},
	{
		Key:         "action_tournaments",
		Title:       "Tournaments",
		Description: "Check upcoming events and pairings.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Trophy icon pill.",
			tier.Small:  "Standard action square.",
			tier.Medium: "Stretched action bar.",
			tier.Large:  "Action with active pairings count.",
		},
	},
	{
		Key:         "recent_decks",
		Title:       "Recent Decks",
		Description: "Quick access to your latest deck projects.",
		DefaultTier: tier.Large,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Last active deck name.",
			tier.Small:  "Commander art for the latest deck.",
			tier.Medium: "Last two decks with color identities.",
			tier.Large:  "Triple deck spread with mini-summaries.",
			tier.XLarge: "Full chronological deck feed.",
		},
	},
	{
		Key:         "system_status",
		Title:       "System Status",
		Description: "Real-time health pulse of the forge.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Simple status dot.",
			tier.Small:  "Current uptime percentage.",
			tier.Medium: "Detailed service status.",
			tier.Large:  "Full system health dashboard.",
		},
	},
	{
		Key:         "subscription",
		Title:       "Subscription",
		Description: "Manage your membership and perks.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Tier logo pill.",
			tier.Small:  "Current plan summary.",
			tier.Medium: "Plan features and renewal date.",
			tier.Large:  "Full tier comparison and billing.",
		},
	},
	{
		Key:         "community",
		Title:       "My Pods",
		Description: "Stay connected with your local playgroups.",
		DefaultTier: tier.Medium,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Member count pill.",
			tier.Small:  "Active friends avatars.",
			tier.Medium: "Recent group activity feed.",
			tier.Large:  "Post to pod wall / social hub.",
			tier.XLarge: "Full community management center.",
		},
	},
	{
		Key:         "social_stats",
		Title:       "Social Battery",
		Description: "Monitor your engagement and shared assets.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Battery percentage pill.",
			tier.Small:  "Standard social gauge.",
			tier.Medium: "Share counts and feedback analytics.",
			tier.Large:  "Detailed audience insights.",
		},
	},
	{
		Key:         "audit",
		Title:       "Collection Audit",
		Description: "Verify your digital collection against physical cards.",
		DefaultTier: tier.XS,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Current audit progress %.",
			tier.Small:  "Next item in audit queue.",
			tier.Medium: "Audit stats and mismatch count.",
			tier.Large:  "Detailed audit results and resume info.",
			tier.XLarge: "Grand overview of collection integrity.",
		},
	},
	{
		Key:         "tips",
		Title:       "Forge Tips",
		Description: "Pro tips for mastering the forge.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Tip icon pill.",
			tier.Small:  "One random pro tip.",
			tier.Medium: "Daily pro trick with icons.",
			tier.Large:  "Top 3 tips for your current tier.",
		},
	},
	{
		Key:         "releases",
		Title:       "New Sets",
		Description: "Incoming card sets and set reviews.",
		DefaultTier: tier.Large,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Release date pill.",
			tier.Small:  "Latest set name.",
			tier.Medium: "Next 3 releases with dates.",
			tier.Large:  "Detailed set review feed.",
		},
	},
	{
		Key:         "guides",
		Title:       "Guides & Resources",
		Description: "Learn how to brew better decks.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Book icon pill.",
			tier.Small:  "Featured guide link.",
			tier.Medium: "Top 3 reading recommendations.",
			tier.Large:  "Full resource library access.",
		},
	},
	{
		Key:         "action_log",
		Title:       "Session History",
		Description: "Track your recent deck edits and actions.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Last action pill.",
			tier.Small:  "Scrollable list of recent actions.",
			tier.Medium: "Extended list with timestamps.",
			tier.Large:  "Full session log with analysis.",
			tier.XLarge: "Detailed history timeline.",
		},
	},
	{
		Key:         "trade_matches",
		Title:       "Trade Alerts",
		Description: "Notifications for automated trade matches in your Pod.",
		DefaultTier: tier.Small,
		Sizes: map[tier.Tier]string{
			tier.XS:     "Pill with match count.",
			tier.Small:  "Standard widget with count and label.",
			tier.Medium: "Detailed alert box.",
			tier.Large:  "Expanded match list preview.",
			tier.XLarge: "Full trade hub integration.",
		},
	},
}
